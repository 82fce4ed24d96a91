package config

import (
	"fmt"
	"strings"

	"apptrack-engine/internal/query"
	"apptrack-engine/internal/store"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills blanks with defaults and checks the rest.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.View.Sort = strings.TrimSpace(out.View.Sort)
	out.View.Order = strings.ToLower(strings.TrimSpace(out.View.Order))

	if out.View.Sort == "" {
		out.View.Sort = query.DefaultSort
	}
	if out.View.Order == "" {
		out.View.Order = query.DefaultOrder
	}
	if out.Storage.WarnBytes == 0 {
		out.Storage.WarnBytes = store.WarnBytes
	}

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if !query.ValidSortKey(out.View.Sort) {
		res.addErr("view.sort %q is not a sortable field", out.View.Sort)
	}
	if out.View.Order != "asc" && out.View.Order != "desc" {
		res.addErr("view.order must be asc or desc")
	}
	if out.Storage.WarnBytes < 0 {
		res.addErr("storage.warn_bytes must be >= 0")
	}
	if out.Storage.WarnBytes > 0 && out.Storage.WarnBytes < 64*1024 {
		res.addWarn("storage.warn_bytes is very low (%d); the warning will show almost immediately.", out.Storage.WarnBytes)
	}

	return out, res
}
