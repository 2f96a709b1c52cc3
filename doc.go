// Package sprout drives the visual effects of a static portfolio page: a
// pointer-reactive field of decorative leaves, pointer-following tilt on
// individual leaves, a typing effect on the brand label, reveal-on-scroll,
// and a scroll-spy that keeps the navigation menu and page sections in sync.
//
// The package does no drawing of its own. Effects write element state
// (transform, opacity, colour, class flags, text) through the [Renderer]
// interface; [Surface] is the in-memory implementation the frontends read
// back from. Three frontends live in sub-packages: ebitenview (desktop
// window), termview (terminal) and pngview (offline images).
//
// # Quick start
//
//	doc, err := sprout.LoadDocument("page.html")
//	if err != nil {
//		log.Fatal(err)
//	}
//	surface := sprout.NewSurface()
//	page := sprout.NewPage(doc, sprout.DefaultConfig(), surface, sprout.PageOptions{
//		Viewport: sprout.Viewport{Width: 1024, Height: 768},
//	})
//	ebitenview.Run(page, surface, ebitenview.RunConfig{Title: "sprout"})
//
// # Frames
//
// Everything is single-threaded and frame driven. [Page.Update] takes one
// immutable [Snapshot] of the [Environment] (pointer, viewport, scroll,
// reduced-motion preference) and hands it to every animator registered
// with the page's [Ticker]. Input methods such as [Page.PointerMove] and
// [Page.ScrollTo] only record state; scroll and resize reconciliation is
// coalesced into a single [Ticker.RequestFrame] callback per frame.
//
// # Page markup
//
// [ParseDocument] reads HTML with goquery. Elements are found by class or
// id (.leaf-field, .leaf, .brand, .nav-link, .top-row, .reveal,
// #date-stamp, and one id per linked section). There is no layout engine,
// so geometry comes from data-rect="x,y,width,height" attributes in page
// pixels. A missing element disables the effect that needs it; it is
// never an error.
//
// # Randomness
//
// Leaf jitter, initial opacity and flourish tilt draw from one injected
// *rand.Rand (math/rand/v2). Tests seed it with rand.NewPCG for
// reproducible output.
//
// # Logging
//
// The package is silent by default. [SetLogger] installs a *slog.Logger.
// Page assembly is logged at Info, disabled effects and per-frame stats
// (see [Page.SetDebugMode]) at Debug.
package sprout
