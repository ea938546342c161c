package web

import "embed"

// Templates embeds the layouts, partials and pages.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

// Static embeds the stylesheet and other assets served under /static/.
//
//go:embed static
var Static embed.FS
