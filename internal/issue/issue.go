// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	SevenZipNotFoundId Id = iota + 1
	ProjectNotFoundId
	MapNotFoundId
	ExtentLayerNotFoundId
	ExtractionFailedId
	StoreNotFoundId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.extLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	sevenZipNotFoundIssue = &Issue{
		id: SevenZipNotFoundId,
		mdMsg: `
# 7-Zip not found!

Extracting a transfer bundle requires the 7-Zip command-line tool, and we
could not find it in any of the conventional install locations or on PATH.

## Things you can try:
- Install 7-Zip (package '7zip' or 'p7zip-full' on most Linux distributions)
- Add the install directory to your PATH
- Point mapvault at the executable in your config file:
~~~cue
seven_zip: paths: ["/opt/7z/7zz"]
~~~`,
		extLinks: []HttpLink{"https://7-zip.org"},
	}

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# Project not found!

The project path you supplied does not exist or is not a readable map project.

## Things you can try:
- Check the --project path for typos
- Make sure the project directory contains a project.toml`,
	}

	mapNotFoundIssue = &Issue{
		id: MapNotFoundId,
		mdMsg: `
# Map not found!

No map in the project matches the name pattern you supplied.

## Things you can try:
- List the project's maps:
~~~
$ mapvault layers --project <path>
~~~
- Use a wildcard pattern, e.g. --map 'Bedrock*'`,
	}

	extentLayerNotFoundIssue = &Issue{
		id: ExtentLayerNotFoundId,
		mdMsg: `
# Extent layer not found!

The layer named with --extent-layer is not a non-group layer of the selected
map, or it has no spatial extent to clip against.

## Things you can try:
- Check the layer name (names are matched exactly, including case)
- Pick a feature layer, not a group layer
- Omit --extent-layer to archive without clipping`,
	}

	extractionFailedIssue = &Issue{
		id: ExtractionFailedId,
		mdMsg: `
# Bundle extraction failed!

7-Zip exited with a non-zero status while unpacking the transfer bundle.
The partial destination directory has been removed.

## Things you can try:
- Re-run with --verbose to see the captured 7-Zip output
- Check free disk space in the output directory
- Verify the bundle file is not truncated`,
	}

	storeNotFoundIssue = &Issue{
		id: StoreNotFoundId,
		mdMsg: `
# No feature store in bundle!

The bundle extracted cleanly, but no directory with the feature-store
suffix (.gdb) was found in the extracted tree.

## Things you can try:
- Confirm the bundle was produced by the packaging step
- Re-run the archive from the start so packaging and extraction match`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config file contains syntax errors or invalid values.

## Things you can try:
- Check the error message above for the specific field
- Show the effective configuration:
~~~
$ mapvault config show
~~~
- Remove the config file to fall back to defaults`,
	}

	issueCatalog = map[Id]*Issue{
		SevenZipNotFoundId:    sevenZipNotFoundIssue,
		ProjectNotFoundId:     projectNotFoundIssue,
		MapNotFoundId:         mapNotFoundIssue,
		ExtentLayerNotFoundId: extentLayerNotFoundIssue,
		ExtractionFailedId:    extractionFailedIssue,
		StoreNotFoundId:       storeNotFoundIssue,
		ConfigLoadFailedId:    configLoadFailedIssue,
	}
)

// Lookup returns the catalog entry for an Id, or nil when the Id is unknown.
func Lookup(id Id) *Issue {
	return issueCatalog[id]
}

// All returns every catalog entry ordered by Id.
func All() []*Issue {
	out := maps.Values(issueCatalog)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}
