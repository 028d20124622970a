package extractor

// builtinTags lists the lower-case HTML and SVG element names. A tag in this
// table is never an unbound component, and declarations for it use the
// tw.<tag> form.
var builtinTags = map[string]struct{}{}

func init() {
	html := []string{
		"a", "abbr", "address", "area", "article", "aside", "audio",
		"b", "base", "bdi", "bdo", "big", "blockquote", "body", "br", "button",
		"canvas", "caption", "cite", "code", "col", "colgroup",
		"data", "datalist", "dd", "del", "details", "dfn", "dialog", "div", "dl", "dt",
		"em", "embed",
		"fieldset", "figcaption", "figure", "footer", "form",
		"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup", "hr", "html",
		"i", "iframe", "img", "input", "ins",
		"kbd", "keygen",
		"label", "legend", "li", "link",
		"main", "map", "mark", "menu", "menuitem", "meta", "meter",
		"nav", "noscript",
		"object", "ol", "optgroup", "option", "output",
		"p", "param", "picture", "pre", "progress",
		"q",
		"rp", "rt", "ruby",
		"s", "samp", "script", "search", "section", "select", "slot", "small",
		"source", "span", "strong", "style", "sub", "summary", "sup",
		"table", "tbody", "td", "template", "textarea", "tfoot", "th", "thead",
		"time", "title", "tr", "track",
		"u", "ul",
		"var", "video",
		"wbr", "webview",
	}
	svg := []string{
		"svg", "animate", "animateMotion", "animateTransform", "circle",
		"clipPath", "defs", "desc", "ellipse",
		"feBlend", "feColorMatrix", "feComponentTransfer", "feComposite",
		"feConvolveMatrix", "feDiffuseLighting", "feDisplacementMap",
		"feDistantLight", "feDropShadow", "feFlood", "feFuncA", "feFuncB",
		"feFuncG", "feFuncR", "feGaussianBlur", "feImage", "feMerge",
		"feMergeNode", "feMorphology", "feOffset", "fePointLight",
		"feSpecularLighting", "feSpotLight", "feTile", "feTurbulence",
		"filter", "foreignObject", "g", "image", "line", "linearGradient",
		"marker", "mask", "metadata", "mpath", "path", "pattern", "polygon",
		"polyline", "radialGradient", "rect", "set", "stop", "switch",
		"symbol", "text", "textPath", "tspan", "use", "view",
	}
	for _, tag := range html {
		builtinTags[tag] = struct{}{}
	}
	for _, tag := range svg {
		builtinTags[tag] = struct{}{}
	}
}

// IsBuiltinTag reports whether name is a native HTML or SVG element.
func IsBuiltinTag(name string) bool {
	_, ok := builtinTags[name]
	return ok
}
