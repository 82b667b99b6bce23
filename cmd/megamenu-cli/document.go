package main

import (
	"fmt"
	"io/fs"

	megamenu "github.com/goliatone/go-megamenu"
	"github.com/goliatone/go-megamenu/pkg/placeholder/pagehost"
)

const documentTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Navigation</title>
%s
</head>
<body>
%s
</body>
</html>`

// renderDocument wraps the page slots in a standalone HTML document. Inline
// embeds the stylesheet; otherwise it is linked from /assets/.
func renderDocument(page *pagehost.Page, inline bool) (string, error) {
	head := `<link rel="stylesheet" href="/assets/` + megamenu.StylesheetName + `">`
	if inline {
		css, err := fs.ReadFile(megamenu.RuntimeAssetsFS(), megamenu.StylesheetName)
		if err != nil {
			return "", fmt.Errorf("read stylesheet: %w", err)
		}
		head = "<style>\n" + string(css) + "</style>"
	}
	return fmt.Sprintf(documentTemplate, head, page.HTML()), nil
}
