// Package browser obtains the two ISO 3166 registry tables from a rendered
// page.
//
// The registry at iso.org is a client-side application: the tables only
// exist after its JavaScript has run, so a plain HTTP GET is not enough.
// Fetcher drives a headless Chromium through go-rod, waits for both tables
// to appear and returns their outer HTML. FileSource reads a page saved
// earlier with Fetcher.Page (the fetch command) and is used for offline runs
// and tests.
//
// # Resource scope
//
// Fetcher owns the browser for exactly one call. Launcher, browser and page
// are released by deferred cleanup whether the call succeeds, fails or is
// cancelled.
//
// # Usage
//
//	f := browser.NewFetcher(browser.WithTimeout(30 * time.Second))
//	tables, err := f.Tables(ctx)
package browser
