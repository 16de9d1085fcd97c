package filter

// defaultExcludes 是始终生效的排除模式：锁文件、构建产物、
// 版本库与 IDE 目录、图片字体等不适合逐行打印的内容。
var defaultExcludes = []string{
	// 锁文件
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Cargo.lock",
	"Gemfile.lock",
	"composer.lock",
	"poetry.lock",
	"Pipfile.lock",
	"flake.lock",
	"go.sum",
	// 构建产物
	"node_modules/**",
	"target/**",
	"dist/**",
	"build/**",
	".next/**",
	"__pycache__/**",
	"*.pyc",
	// 版本库与 IDE
	".git/**",
	".svn/**",
	".idea/**",
	".vscode/**",
	"*.swp",
	"*.swo",
	".DS_Store",
	// 图片
	"*.png",
	"*.jpg",
	"*.jpeg",
	"*.gif",
	"*.ico",
	"*.svg",
	"*.webp",
	"*.bmp",
	// 字体
	"*.woff",
	"*.woff2",
	"*.ttf",
	"*.otf",
	"*.eot",
	// 归档与二进制
	"*.zip",
	"*.tar",
	"*.gz",
	"*.bz2",
	"*.xz",
	"*.7z",
	"*.rar",
	"*.exe",
	"*.dll",
	"*.so",
	"*.dylib",
	"*.o",
	"*.a",
	"*.class",
	"*.jar",
	"*.war",
	"*.wasm",
	// 生成物与压缩产物
	"*.min.js",
	"*.min.css",
	"*.map",
	"*.bundle.js",
	// 数据文件
	"*.sqlite",
	"*.db",
	"*.pdf",
}
