// Command gitprint 把 git 仓库排版成带语法高亮、适合打印的 PDF：
// 封面、目录、文件树、逐行带行号的正文，外加可选的提交历史附录。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/ByLCY/gitprint/compose"
	"github.com/ByLCY/gitprint/filter"
	"github.com/ByLCY/gitprint/gitrepo"
	"github.com/ByLCY/gitprint/highlight"
	"github.com/ByLCY/gitprint/layout"
	"github.com/ByLCY/gitprint/renderer"
	canvasrenderer "github.com/ByLCY/gitprint/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/gitprint/renderer/fpdf"
	"github.com/ByLCY/gitprint/theme"
)

var cli struct {
	Path   string `arg:"" optional:"" default:"." help:"git 仓库路径或远端地址"`
	Output string `short:"o" help:"输出的 PDF 路径，默认 <仓库名>.pdf" type:"path"`

	Include []string `help:"要打印的文件的 glob 模式，可重复"`
	Exclude []string `help:"要排除的文件的 glob 模式，可重复"`

	Theme     string  `default:"github" help:"语法高亮配色方案"`
	ThemeFile string  `help:"自定义主题文件，优先于 --theme" type:"path"`
	FontSize  float64 `default:"8" help:"正文字号（pt）"`

	NoLineNumbers bool `help:"不显示行号"`
	NoToc         bool `help:"不生成目录"`
	NoFileTree    bool `help:"不生成文件树"`

	Branch  string `help:"使用指定分支"`
	Commit  string `help:"使用指定提交"`
	Commits int    `help:"附录中包含最近 N 条提交的改动"`

	PaperSize string `default:"A4" enum:"A4,Letter,Legal" help:"纸张尺寸"`
	Landscape bool   `help:"横向排版"`

	Engine     string `default:"fpdf" enum:"fpdf,canvas" help:"PDF 生成引擎"`
	Font       string `help:"等宽 TTF 字体路径（canvas 引擎必需）" type:"path"`
	FontBold   string `help:"粗体字重的 TTF 路径" type:"path"`
	FontItalic string `help:"斜体字重的 TTF 路径" type:"path"`

	ListThemes  bool   `help:"列出可用配色方案后退出"`
	DebugLayout string `help:"把页面指令转储为 JSON 到指定路径" type:"path"`
	Verbose     bool   `short:"v" help:"输出调试日志"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("gitprint"),
		kong.Description("把 git 仓库转换成排版精良的 PDF"),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cli.ListThemes {
		for _, name := range highlight.Themes() {
			fmt.Println(name)
		}
		return
	}

	if err := run(context.Background()); err != nil {
		slog.Error("生成失败", "err", err)
		kctx.Exit(1)
	}
}

func run(ctx context.Context) error {
	repo, cleanup, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if cli.Branch != "" {
		if err := repo.Checkout(ctx, cli.Branch); err != nil {
			return err
		}
	}
	repo.Ref = cli.Commit

	info, err := repo.Info(ctx)
	if err != nil {
		return err
	}

	paths, err := listFiles(ctx, repo)
	if err != nil {
		return err
	}

	highlighter, err := buildHighlighter()
	if err != nil {
		return err
	}

	files, totalLines := collectFiles(ctx, repo, paths, highlighter)

	meta := compose.Metadata{
		Name:       info.Name,
		Branch:     info.Branch,
		ShortHash:  info.ShortHash,
		CommitDate: info.CommitDate,
		Message:    info.Message,
		FileCount:  len(files),
		TotalLines: totalLines,
		Generated:  time.Now().Format("2006-01-02 15:04"),
	}

	commits, err := collectCommits(ctx, repo)
	if err != nil {
		return err
	}

	geom, err := layout.PaperGeometry(cli.PaperSize, cli.Landscape, cli.FontSize)
	if err != nil {
		return err
	}
	doc := compose.Assemble(meta, files, commits, compose.Options{
		Geometry:    geom,
		FontSize:    cli.FontSize,
		LineNumbers: !cli.NoLineNumbers,
		TOC:         !cli.NoToc,
		Tree:        !cli.NoFileTree,
	})

	if cli.DebugLayout != "" {
		if err := layout.WriteDebugJSON(doc.Pages, cli.DebugLayout); err != nil {
			return fmt.Errorf("转储布局: %w", err)
		}
	}

	data, err := buildRenderer().Render(doc)
	if err != nil {
		return err
	}

	output := cli.Output
	if output == "" {
		output = outputName() + ".pdf"
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("写出 %s: %w", output, err)
	}

	slog.Info("完成", "files", len(files), "lines", totalLines,
		"pages", len(doc.Pages), "output", output)
	return nil
}

// openRepo 打开本地仓库，或把远端地址克隆到临时目录。
func openRepo(ctx context.Context) (*gitrepo.Repo, func(), error) {
	if !gitrepo.IsRemoteURL(cli.Path) {
		repo, err := gitrepo.Open(ctx, cli.Path)
		return repo, func() {}, err
	}

	dir, err := os.MkdirTemp("", "gitprint-*")
	if err != nil {
		return nil, nil, fmt.Errorf("创建临时目录: %w", err)
	}
	repo, err := gitrepo.Clone(ctx, cli.Path, dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, nil, err
	}
	return repo, func() { os.RemoveAll(dir) }, nil
}

func listFiles(ctx context.Context, repo *gitrepo.Repo) ([]gitrepo.Entry, error) {
	entries, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	f, err := filter.New(cli.Include, cli.Exclude)
	if err != nil {
		return nil, err
	}
	kept := entries[:0]
	for _, e := range entries {
		if f.ShouldInclude(e.Path) {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

func buildHighlighter() (*highlight.Highlighter, error) {
	if cli.ThemeFile != "" {
		style, err := theme.Load(cli.ThemeFile)
		if err != nil {
			return nil, err
		}
		return highlight.FromStyle(style, cli.FontSize), nil
	}
	h, err := highlight.New(cli.Theme, cli.FontSize)
	if err != nil {
		return nil, fmt.Errorf("%w（--list-themes 查看可用方案）", err)
	}
	return h, nil
}

// collectFiles 逐文件读取内容，跳过二进制与压缩产物，
// 其余的接上高亮行序列。
func collectFiles(ctx context.Context, repo *gitrepo.Repo, entries []gitrepo.Entry, h *highlight.Highlighter) ([]compose.File, int) {
	var files []compose.File
	total := 0
	for _, e := range entries {
		content, err := repo.ReadFile(ctx, e.Path)
		if err != nil {
			slog.Warn("读取失败，跳过", "path", e.Path, "err", err)
			continue
		}
		if filter.IsBinary(content) {
			slog.Debug("跳过二进制文件", "path", e.Path)
			continue
		}
		text := string(content)
		if filter.IsMinified(text) {
			slog.Debug("跳过压缩产物", "path", e.Path)
			continue
		}

		f := compose.File{
			Path:      e.Path,
			LineCount: gitrepo.CountLines(content),
			Lines:     h.Lines(e.Path, text),
		}
		if e.Size > 0 {
			f.SizeLabel = humanize.Bytes(uint64(e.Size))
		}
		if !e.Modified.IsZero() {
			f.Modified = e.Modified.Format("2006-01-02")
		}
		total += f.LineCount
		files = append(files, f)
	}
	return files, total
}

func collectCommits(ctx context.Context, repo *gitrepo.Repo) ([]compose.Commit, error) {
	if cli.Commits <= 0 {
		return nil, nil
	}
	raw, err := repo.RecentCommits(ctx, cli.Commits)
	if err != nil {
		return nil, err
	}
	base := repo.WebURL(ctx)

	commits := make([]compose.Commit, 0, len(raw))
	for _, c := range raw {
		cc := compose.Commit{
			SHA:     c.SHA,
			Author:  c.Author,
			Date:    c.Date,
			Message: c.Message,
		}
		if base != "" {
			cc.URL = base + "/commit/" + c.SHA
		}
		for _, f := range c.Files {
			cc.Files = append(cc.Files, compose.CommitFile{
				Path:      f.Path,
				Additions: f.Additions,
				Deletions: f.Deletions,
				Patch:     f.Patch,
			})
		}
		commits = append(commits, cc)
	}
	return commits, nil
}

func buildRenderer() renderer.Renderer {
	if cli.Engine == "canvas" {
		return canvasrenderer.NewRenderer(canvasrenderer.Options{
			Regular: canvasrenderer.Resource{Path: cli.Font},
			Bold:    canvasrenderer.Resource{Path: cli.FontBold},
			Italic:  canvasrenderer.Resource{Path: cli.FontItalic},
		})
	}
	return fpdfrenderer.New(fpdfrenderer.Options{
		FontFile:       cli.Font,
		BoldFontFile:   cli.FontBold,
		ItalicFontFile: cli.FontItalic,
		Creator:        "gitprint",
	})
}

// outputName 推导默认输出文件名：远端取地址里的仓库名，
// 本地取目录名。
func outputName() string {
	if gitrepo.IsRemoteURL(cli.Path) {
		return gitrepo.NameFromURL(cli.Path)
	}
	abs, err := filepath.Abs(cli.Path)
	if err != nil || abs == string(filepath.Separator) {
		return "output"
	}
	name := filepath.Base(abs)
	if name == "." || strings.TrimSpace(name) == "" {
		return "output"
	}
	return name
}
