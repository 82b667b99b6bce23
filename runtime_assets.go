package megamenu

import (
	"embed"
	"io/fs"
)

//go:embed pkg/runtime/assets/*.css
var embeddedRuntimeAssets embed.FS

// StylesheetName is the stylesheet inside RuntimeAssetsFS styling the default
// chrome classes.
const StylesheetName = "megamenu.css"

// RuntimeAssetsFS exposes the stylesheet (committed under pkg/runtime/assets)
// so Go applications can serve it next to the rendered menu.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(megamenu.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntimeAssets, "pkg/runtime/assets")
	if err != nil {
		return embeddedRuntimeAssets
	}
	return sub
}
