package gitrepo

import (
	"context"
	"fmt"
	"strings"
)

// IsRemoteURL 判断参数是远端仓库地址还是本地路径。
func IsRemoteURL(s string) bool {
	return strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "git@") ||
		strings.HasPrefix(s, "ssh://")
}

// Clone 把远端仓库克隆到 dir 并返回句柄。
func Clone(ctx context.Context, url, dir string) (*Repo, error) {
	if _, err := run(ctx, ".", "clone", "--quiet", url, dir); err != nil {
		return nil, fmt.Errorf("克隆 %s: %w", url, err)
	}
	return Open(ctx, dir)
}

// NameFromURL 从远端地址里取仓库名，用于默认输出文件名。
func NameFromURL(url string) string {
	name := strings.TrimSuffix(url, "/")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".git")
}

// WebURL 把 origin 远端地址规整成可访问的 https 地址。
// 没有远端或无法识别时返回空串。
func (r *Repo) WebURL(ctx context.Context) string {
	out, err := run(ctx, r.Root, "config", "--get", "remote.origin.url")
	if err != nil {
		return ""
	}
	url := strings.TrimSpace(out)
	url = strings.TrimSuffix(url, ".git")
	if strings.HasPrefix(url, "git@") {
		// git@host:owner/repo -> https://host/owner/repo
		rest := strings.TrimPrefix(url, "git@")
		host, path, ok := strings.Cut(rest, ":")
		if !ok {
			return ""
		}
		return "https://" + host + "/" + path
	}
	if strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
		return url
	}
	return ""
}
