// Package gitrepo 通过 git 命令行读取仓库内容与元信息。
// 所有读取都走 git 自身，不解析对象库；Ref 为空时读工作区。
package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Repo 是一个已验证过的 git 仓库句柄。
type Repo struct {
	// Root 是仓库工作区的绝对路径。
	Root string
	// Ref 非空时所有文件读取都针对该提交而不是工作区。
	Ref string
}

// Entry 描述仓库中的一个文件。
type Entry struct {
	Path     string
	Size     int64
	Modified time.Time
}

// Info 是封面需要的仓库元信息。
type Info struct {
	Name       string
	Branch     string
	ShortHash  string
	CommitDate string
	Message    string
}

// Open 验证 path 指向一个 git 仓库并返回其顶层目录句柄。
func Open(ctx context.Context, path string) (*Repo, error) {
	out, err := run(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%s 不是 git 仓库: %w", path, err)
	}
	return &Repo{Root: strings.TrimSpace(out)}, nil
}

// Checkout 切换仓库到指定分支或提交。
func (r *Repo) Checkout(ctx context.Context, ref string) error {
	if _, err := run(ctx, r.Root, "checkout", "--quiet", ref); err != nil {
		return fmt.Errorf("切换到 %s: %w", ref, err)
	}
	return nil
}

// Info 读取 HEAD（或 Ref）的元信息。
func (r *Repo) Info(ctx context.Context) (Info, error) {
	ref := r.Ref
	if ref == "" {
		ref = "HEAD"
	}
	out, err := run(ctx, r.Root, "log", "-1", "--format=%h%x00%cs%x00%s", ref)
	if err != nil {
		return Info{}, fmt.Errorf("读取提交信息: %w", err)
	}
	parts := strings.SplitN(strings.TrimRight(out, "\n"), "\x00", 3)
	if len(parts) != 3 {
		return Info{}, fmt.Errorf("无法解析提交信息 %q", out)
	}

	branch := ""
	if b, err := run(ctx, r.Root, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		branch = strings.TrimSpace(b)
	}
	return Info{
		Name:       filepath.Base(r.Root),
		Branch:     branch,
		ShortHash:  parts[0],
		CommitDate: parts[1],
		Message:    parts[2],
	}, nil
}

// List 枚举仓库跟踪的全部文件。Ref 非空时枚举该提交的树。
func (r *Repo) List(ctx context.Context) ([]Entry, error) {
	var out string
	var err error
	if r.Ref != "" {
		out, err = run(ctx, r.Root, "ls-tree", "-r", "-z", "--name-only", r.Ref)
	} else {
		out, err = run(ctx, r.Root, "ls-files", "-z")
	}
	if err != nil {
		return nil, fmt.Errorf("枚举文件: %w", err)
	}

	var entries []Entry
	for _, path := range strings.Split(out, "\x00") {
		if path == "" {
			continue
		}
		e := Entry{Path: path}
		if r.Ref == "" {
			if st, err := os.Stat(filepath.Join(r.Root, path)); err == nil {
				e.Size = st.Size()
				e.Modified = st.ModTime()
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ReadFile 读取单个文件内容。
func (r *Repo) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if r.Ref != "" {
		out, err := run(ctx, r.Root, "show", r.Ref+":"+path)
		if err != nil {
			return nil, fmt.Errorf("读取 %s@%s: %w", path, r.Ref, err)
		}
		return []byte(out), nil
	}
	data, err := os.ReadFile(filepath.Join(r.Root, path))
	if err != nil {
		return nil, fmt.Errorf("读取 %s: %w", path, err)
	}
	return data, nil
}

// CountLines 返回文本内容的行数。末尾换行不会多算一行。
func CountLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// run 在 dir 下执行 git 子命令，失败时把 stderr 并入错误。
func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("执行 git", "args", args, "dir", dir)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}
