package gitrepo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestCountLines(t *testing.T) {
	cases := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"one", 1},
		{"one\n", 1},
		{"one\ntwo", 2},
		{"one\ntwo\n", 2},
		{"\n\n\n", 3},
	}
	for _, c := range cases {
		if got := CountLines([]byte(c.content)); got != c.want {
			t.Fatalf("CountLines(%q) = %d，应为 %d", c.content, got, c.want)
		}
	}
}

func TestSplitPatchesByFile(t *testing.T) {
	patch := `diff --git a/main.go b/main.go
index 111..222 100644
--- a/main.go
+++ b/main.go
@@ -1,2 +1,3 @@
-old
+new
+more
diff --git a/util.go b/util.go
index 333..444 100644
--- a/util.go
+++ b/util.go
@@ -5 +5 @@
-x
+y
`
	got := splitPatches(patch)
	if len(got) != 2 {
		t.Fatalf("拆出 %d 个补丁，应为 2 个", len(got))
	}
	if !strings.HasPrefix(got["main.go"], "@@ -1,2 +1,3 @@") {
		t.Fatalf("main.go 的补丁应从 hunk 头开始: %q", got["main.go"])
	}
	if !strings.Contains(got["main.go"], "+more") || strings.Contains(got["main.go"], "util") {
		t.Fatalf("main.go 的补丁内容错误: %q", got["main.go"])
	}
	if !strings.Contains(got["util.go"], "+y") {
		t.Fatalf("util.go 的补丁内容错误: %q", got["util.go"])
	}
}

// initTestRepo 建一个只有一条提交的临时仓库。
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("环境中没有 git")
	}
	dir := t.TempDir()
	mustGit(t, dir, "init", "--quiet")
	mustGit(t, dir, "config", "user.email", "test@example.com")
	mustGit(t, dir, "config", "user.name", "test")

	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "docs", "readme.md"), []byte("# hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mustGit(t, dir, "add", ".")
	mustGit(t, dir, "commit", "--quiet", "-m", "initial import")
	return dir
}

func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v 失败: %v\n%s", args, err, out)
	}
}

func TestOpenListAndRead(t *testing.T) {
	dir := initTestRepo(t)
	ctx := context.Background()

	repo, err := Open(ctx, dir)
	if err != nil {
		t.Fatalf("打开仓库失败: %v", err)
	}

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("枚举到 %d 个文件，应为 2 个", len(entries))
	}
	paths := []string{entries[0].Path, entries[1].Path}
	if paths[0] != "docs/readme.md" || paths[1] != "main.go" {
		t.Fatalf("文件列表错误: %v", paths)
	}
	if entries[1].Size == 0 || entries[1].Modified.IsZero() {
		t.Fatal("工作区条目应带大小与修改时间")
	}

	content, err := repo.ReadFile(ctx, "main.go")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "package main") {
		t.Fatalf("文件内容错误: %q", content)
	}
}

func TestInfoAndRecentCommits(t *testing.T) {
	dir := initTestRepo(t)
	ctx := context.Background()

	repo, err := Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}

	info, err := repo.Info(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if info.Message != "initial import" || info.ShortHash == "" {
		t.Fatalf("元信息错误: %+v", info)
	}
	if info.Name != filepath.Base(repo.Root) {
		t.Fatalf("仓库名应取自顶层目录名: %+v", info)
	}

	commits, err := repo.RecentCommits(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 1 {
		t.Fatalf("提交数为 %d，应为 1", len(commits))
	}
	if len(commits[0].Files) != 2 {
		t.Fatalf("提交改动了 %d 个文件，应为 2 个", len(commits[0].Files))
	}
	for _, f := range commits[0].Files {
		if f.Additions == 0 {
			t.Fatalf("新增文件 %s 的增量不应为 0", f.Path)
		}
		if f.Patch == "" {
			t.Fatalf("小补丁 %s 不应被省略", f.Path)
		}
	}
}
