package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// Load reads configPath (a ".altidx.kdl" file) if it exists, overlaying
// it on Default(). A missing file is not an error: the defaults apply.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	content, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	if err := parseKDL(string(content), cfg); err != nil {
		return nil, err
	}

	if cfg.Project.Root != "" && !filepath.IsAbs(cfg.Project.Root) {
		dir := filepath.Dir(configPath)
		cfg.Project.Root = filepath.Clean(filepath.Join(dir, cfg.Project.Root))
	}
	if !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(cfg.Project.Root, cfg.Store.Path)
	}
	return cfg, nil
}

func parseKDL(content string, cfg *Config) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				if nodeName(cn) == "root" {
					if s, ok := firstStringArg(cn); ok {
						cfg.Project.Root = s
					}
				}
			}
		case "store":
			for _, cn := range n.Children {
				if nodeName(cn) == "path" {
					if s, ok := firstStringArg(cn); ok {
						cfg.Store.Path = s
					}
				}
			}
		case "index":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_file_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Index.MaxFileSizeBytes = int64(v)
					}
				case "respect_gitignore":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Index.RespectGitignore = b
					}
				}
			}
		case "query":
			for _, cn := range n.Children {
				if nodeName(cn) == "busy_timeout_ms" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Query.BusyTimeoutMs = v
					}
				}
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		}
	}
	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	s, ok := n.Arguments[0].Value.(string)
	return s, ok
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	b, ok := n.Arguments[0].Value.(bool)
	return b, ok
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
