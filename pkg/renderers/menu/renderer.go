package menu

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-megamenu/pkg/render"
	rendertemplate "github.com/goliatone/go-megamenu/pkg/render/template"
	gotemplate "github.com/goliatone/go-megamenu/pkg/render/template/gotemplate"
	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// DefaultHref is used for terms without a link target.
const DefaultHref = "#"

// DefaultMobileLabel is the text of the mobile toggle link.
const DefaultMobileLabel = "Navigation"

var allowedSchemes = map[string]struct{}{
	"http":   {},
	"https":  {},
	"mailto": {},
	"tel":    {},
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	maxDepth         int
	defaultHref      string
	chrome           bool
	mobileLabel      string
	classes          render.ChromeClasses
	sanitize         bool
	theme            *themeConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithMaxDepth overrides the recursion limit. Non-positive values keep the
// default.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

// WithDefaultHref overrides the href emitted for terms without a link.
func WithDefaultHref(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.defaultHref = href
		}
	}
}

// WithChromeClasses enables the dropdown/normal-sub classes on menu items and
// the mobile toggle link in the shell.
func WithChromeClasses(enabled bool) Option {
	return func(cfg *config) {
		cfg.chrome = enabled
	}
}

// WithClasses overrides individual class names; empty fields keep defaults.
func WithClasses(classes render.ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = classes.Merge(cfg.classes)
	}
}

// WithMobileLabel sets the mobile toggle link text.
func WithMobileLabel(label string) Option {
	return func(cfg *config) {
		if label = strings.TrimSpace(label); label != "" {
			cfg.mobileLabel = label
		}
	}
}

// WithSanitizer toggles the final bluemonday pass. It is on by default.
func WithSanitizer(enabled bool) Option {
	return func(cfg *config) {
		cfg.sanitize = enabled
	}
}

// Renderer turns term trees into nested list markup.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	maxDepth    int
	defaultHref string
	chrome      bool
	mobileLabel string
	classes     render.ChromeClasses
	policy      *bluemonday.Policy
}

var _ render.PageRenderer = (*Renderer)(nil)

// New constructs a menu renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		maxDepth:    render.DefaultMaxDepth,
		defaultHref: DefaultHref,
		mobileLabel: DefaultMobileLabel,
		classes:     render.DefaultChromeClasses(),
		sanitize:    true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	if cfg.theme != nil {
		classes, err := cfg.theme.resolve()
		if err != nil {
			return nil, fmt.Errorf("menu renderer: resolve theme: %w", err)
		}
		cfg.classes = classes.Merge(cfg.classes)
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("menu renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	r := &Renderer{
		templates:   templates,
		maxDepth:    cfg.maxDepth,
		defaultHref: cfg.defaultHref,
		chrome:      cfg.chrome,
		mobileLabel: cfg.mobileLabel,
		classes:     cfg.classes,
	}
	if cfg.sanitize {
		r.policy = menuPolicy()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "menu"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render returns the nested list markup for terms. An empty tree renders as
// an empty string.
func (r *Renderer) Render(terms []taxonomy.TermNode) (string, error) {
	if r == nil || r.templates == nil {
		return "", fmt.Errorf("menu renderer: template renderer is nil")
	}
	if len(terms) == 0 {
		return "", nil
	}

	markup, err := r.renderLevel(terms, 1, nil)
	if err != nil {
		return "", err
	}
	return r.clean(markup), nil
}

// RenderShell wraps menu markup in the container chrome written to the host
// slot. An empty menu still yields the container with an empty list so the
// slot layout stays stable.
func (r *Renderer) RenderShell(menuMarkup string) (string, error) {
	if r == nil || r.templates == nil {
		return "", fmt.Errorf("menu renderer: template renderer is nil")
	}

	data := map[string]any{
		"menu": menuMarkup,
		"classes": map[string]any{
			"app":       r.classes.App,
			"container": r.classes.Container,
			"menu":      r.classes.Menu,
			"mobile":    r.classes.MobileLink,
		},
	}
	if r.chrome {
		data["mobile"] = r.mobileLabel
	}

	out, err := r.templates.RenderTemplate(shellTemplate, data)
	if err != nil {
		return "", fmt.Errorf("menu renderer: render shell: %w", err)
	}
	return r.clean(out), nil
}

func (r *Renderer) renderLevel(terms []taxonomy.TermNode, depth int, path []string) (string, error) {
	if depth > r.maxDepth {
		return "", &render.DepthError{Limit: r.maxDepth, Path: path}
	}

	var items strings.Builder
	for _, term := range terms {
		termPath := append(path[:len(path):len(path)], term.Name)

		children := ""
		if term.HasChildren() {
			nested, err := r.renderLevel(term.Terms, depth+1, termPath)
			if err != nil {
				return "", err
			}
			children = nested
		}

		class := ""
		if r.chrome && depth == 1 && term.HasChildren() {
			class = r.classes.Dropdown
		}

		item, err := r.templates.RenderTemplate(itemTemplate, map[string]any{
			"class":    class,
			"href":     r.href(term),
			"name":     strings.ToValidUTF8(term.Name, "\uFFFD"),
			"children": children,
		})
		if err != nil {
			return "", fmt.Errorf("menu renderer: render item %q: %w", term.Name, err)
		}
		items.WriteString(strings.TrimSpace(item))
	}

	class := ""
	if r.chrome && depth == 2 && allLeaves(terms) {
		class = r.classes.NormalSub
	}

	level, err := r.templates.RenderTemplate(levelTemplate, map[string]any{
		"class": class,
		"items": items.String(),
	})
	if err != nil {
		return "", fmt.Errorf("menu renderer: render level %d: %w", depth, err)
	}
	return strings.TrimSpace(level), nil
}

// href returns the term's link when it is safe, and the default href otherwise.
func (r *Renderer) href(term taxonomy.TermNode) string {
	link, ok := term.Link()
	if !ok {
		return r.defaultHref
	}
	if safe, ok := SafeLink(link); ok {
		return safe
	}
	return r.defaultHref
}

// SafeLink reports whether link is relative or uses http, https, mailto, or
// tel, returning it with spaces percent-encoded. Links that do not parse are
// rejected.
func SafeLink(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	if parsed.Scheme != "" {
		if _, allowed := allowedSchemes[strings.ToLower(parsed.Scheme)]; !allowed {
			return "", false
		}
	}
	return strings.ReplaceAll(strings.ToValidUTF8(link, "\uFFFD"), " ", "%20"), true
}

func (r *Renderer) clean(markup string) string {
	if r.policy == nil {
		return markup
	}
	return r.policy.Sanitize(markup)
}

func allLeaves(terms []taxonomy.TermNode) bool {
	for _, term := range terms {
		if term.HasChildren() {
			return false
		}
	}
	return true
}
