package core

const DefaultTitle = "同构测试"

// RenderContext is the per-request value handed to the bundle's server entry.
type RenderContext struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func NewRenderContext(url, title string) RenderContext {
	if url == "" {
		url = "/"
	}
	return RenderContext{URL: url, Title: title}
}
