package gitrepo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// maxPatchLines 之上的补丁不逐行排版，只保留增删统计。
const maxPatchLines = 400

// Commit 是一条提交记录，含逐文件的改动统计与补丁文本。
type Commit struct {
	SHA     string
	Author  string
	Date    string
	Message string
	Files   []CommitFile
}

// CommitFile 描述提交中一个被改动的文件。补丁过大或为二进制
// 改动时 Patch 为空。
type CommitFile struct {
	Path      string
	Additions int
	Deletions int
	Patch     string
}

// RecentCommits 读取最近 n 条提交及其改动。n 不为正时返回空。
func (r *Repo) RecentCommits(ctx context.Context, n int) ([]Commit, error) {
	if n <= 0 {
		return nil, nil
	}
	ref := r.Ref
	if ref == "" {
		ref = "HEAD"
	}
	out, err := run(ctx, r.Root, "log", "-n", strconv.Itoa(n),
		"--format=%H%x00%an%x00%cs%x00%s", ref)
	if err != nil {
		return nil, fmt.Errorf("读取提交历史: %w", err)
	}

	var commits []Commit
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		parts := strings.SplitN(line, "\x00", 4)
		if len(parts) != 4 {
			continue
		}
		c := Commit{SHA: parts[0], Author: parts[1], Date: parts[2], Message: parts[3]}
		if c.Files, err = r.commitFiles(ctx, c.SHA); err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// commitFiles 把 numstat 的统计与 patch 的正文按路径合并。
func (r *Repo) commitFiles(ctx context.Context, sha string) ([]CommitFile, error) {
	stats, err := run(ctx, r.Root, "show", "--numstat", "--format=", sha)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 的改动统计: %w", sha[:8], err)
	}
	patch, err := run(ctx, r.Root, "show", "--patch", "--format=", sha)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 的补丁: %w", sha[:8], err)
	}
	patches := splitPatches(patch)

	var files []CommitFile
	for _, line := range strings.Split(strings.TrimRight(stats, "\n"), "\n") {
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			continue
		}
		f := CommitFile{Path: fields[2]}
		// 二进制改动的 numstat 是 "-\t-\t路径"，增删数保持为零。
		f.Additions, _ = strconv.Atoi(fields[0])
		f.Deletions, _ = strconv.Atoi(fields[1])
		if p, ok := patches[f.Path]; ok && strings.Count(p, "\n") <= maxPatchLines {
			f.Patch = p
		}
		files = append(files, f)
	}
	return files, nil
}

// splitPatches 把整个提交的统一 diff 按文件拆开，键为新路径。
// 每段正文从第一个 hunk 头开始，省去 index 与 mode 行。
func splitPatches(patch string) map[string]string {
	out := map[string]string{}
	for _, section := range strings.Split(patch, "\ndiff --git ") {
		section = strings.TrimPrefix(section, "diff --git ")
		if section == "" {
			continue
		}
		path := ""
		for _, line := range strings.Split(section, "\n") {
			if strings.HasPrefix(line, "+++ b/") {
				path = strings.TrimPrefix(line, "+++ b/")
				break
			}
			if strings.HasPrefix(line, "--- a/") && path == "" {
				path = strings.TrimPrefix(line, "--- a/")
			}
		}
		if path == "" {
			continue
		}
		if at := strings.Index(section, "\n@@"); at >= 0 {
			out[path] = section[at+1:]
		}
	}
	return out
}
