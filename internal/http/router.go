package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Companies  *CompanyHandler
	Audits     *AuditHandler
	Themes     *ThemeHandler
	Interviews *InterviewHandler
	Plans      *PlanHandler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Companies != nil {
		mux.HandleFunc("/companies", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Companies.List(w, r)
			case http.MethodPost:
				cfg.Companies.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/companies/", func(w http.ResponseWriter, r *http.Request) {
			id, rest := splitResourcePath(r.URL.Path, "/companies/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithCompanyID(r.Context(), id))

			switch rest {
			case "":
				switch r.Method {
				case http.MethodGet:
					cfg.Companies.Get(w, r)
				case http.MethodPut:
					cfg.Companies.Update(w, r)
				case http.MethodDelete:
					cfg.Companies.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
				}
			case "audits":
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Companies.ListAudits(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Audits != nil {
		mux.HandleFunc("/audits", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Audits.List(w, r)
			case http.MethodPost:
				cfg.Audits.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/audits/", func(w http.ResponseWriter, r *http.Request) {
			id, rest := splitResourcePath(r.URL.Path, "/audits/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithAuditID(r.Context(), id))

			switch rest {
			case "":
				switch r.Method {
				case http.MethodGet:
					cfg.Audits.Get(w, r)
				case http.MethodPut:
					cfg.Audits.Update(w, r)
				case http.MethodDelete:
					cfg.Audits.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
				}
			case "interviews":
				if cfg.Interviews == nil {
					http.NotFound(w, r)
					return
				}
				switch r.Method {
				case http.MethodGet:
					cfg.Interviews.ListForAudit(w, r)
				case http.MethodPost:
					cfg.Interviews.Create(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPost)
				}
			case "plan":
				if cfg.Plans == nil {
					http.NotFound(w, r)
					return
				}
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Plans.Commit(w, r)
			case "plan/preview":
				if cfg.Plans == nil {
					http.NotFound(w, r)
					return
				}
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Plans.Preview(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Themes != nil {
		mux.HandleFunc("/themes", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Themes.List(w, r)
			case http.MethodPost:
				cfg.Themes.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/themes/", func(w http.ResponseWriter, r *http.Request) {
			id, rest := splitResourcePath(r.URL.Path, "/themes/")
			if id == "" || rest != "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithThemeID(r.Context(), id))
			switch r.Method {
			case http.MethodGet:
				cfg.Themes.Get(w, r)
			case http.MethodPut:
				cfg.Themes.Update(w, r)
			case http.MethodDelete:
				cfg.Themes.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Interviews != nil {
		mux.HandleFunc("/interviews/", func(w http.ResponseWriter, r *http.Request) {
			id, rest := splitResourcePath(r.URL.Path, "/interviews/")
			if id == "" || rest != "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithInterviewID(r.Context(), id))
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Interviews.Delete(w, r)
		})
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}
	return handler
}

// splitResourcePath separates the resource ID from any trailing subresource
// path, so "/audits/a1/plan/preview" yields ("a1", "plan/preview").
func splitResourcePath(path, prefix string) (id, rest string) {
	trimmed := strings.TrimPrefix(path, prefix)
	trimmed = strings.TrimSuffix(trimmed, "/")
	if trimmed == "" {
		return "", ""
	}
	if idx := strings.Index(trimmed, "/"); idx >= 0 {
		return trimmed[:idx], trimmed[idx+1:]
	}
	return trimmed, ""
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
