// Package menu renders taxonomy term trees as nested navigation markup.
//
// Each hierarchy level becomes a <ul>; each term becomes an <li> holding an
// <a> whose href is the term's link (or "#") and whose text is the term name.
// Output is produced through the embedded templates, rendered by go-template
// on a pongo2 set with autoescaping on. Term names are coerced to valid UTF-8,
// hrefs are restricted to safe schemes, and the final markup passes a
// bluemonday policy that only admits the elements the menu emits.
//
//	renderer, err := menu.New()
//	markup, err := renderer.Render(terms)
//
// Rendering is pure. Trees deeper than the configured maximum fail with an
// error wrapping render.ErrMenuTooDeep.
package menu
