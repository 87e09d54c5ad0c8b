package manifest

import "strings"

// CurrentVersion is the manifest format version written by Default.
const CurrentVersion = 1

// Manifest is the decoded form of assetkit.yaml.
type Manifest struct {
	Version int    `yaml:"version" json:"version"`
	Links   []Link `yaml:"links,omitempty" json:"links,omitempty"`
	Minify  Minify `yaml:"minify" json:"minify"`
	Style   Style  `yaml:"style" json:"style"`
	Tools   Tools  `yaml:"tools,omitempty" json:"tools,omitempty"`
}

// Link declares a directory symlink. Path is relative to the project root;
// Target is written into the link verbatim and therefore resolves against
// the directory that contains Path.
type Link struct {
	Path   string `yaml:"path" json:"path"`
	Target string `yaml:"target" json:"target"`
}

// Minify declares the minification categories of one asset root.
type Minify struct {
	Root       string     `yaml:"root" json:"root"`
	Categories []Category `yaml:"categories" json:"categories"`
}

// Category is a non-recursive glob of source files sharing an extension
// and a set of minifier flags.
type Category struct {
	Name      string `yaml:"name" json:"name"`
	Pattern   string `yaml:"pattern" json:"pattern"`
	Extension string `yaml:"extension" json:"extension"`
	// CSSPrecision, when set, is passed as --css-precision.
	CSSPrecision *int `yaml:"css_precision,omitempty" json:"css_precision,omitempty"`
}

// MinSuffix returns the suffix that marks already-minified files,
// e.g. ".min.js" for extension ".js".
func (c Category) MinSuffix() string {
	return ".min" + c.normalizedExt()
}

func (c Category) normalizedExt() string {
	if strings.HasPrefix(c.Extension, ".") {
		return c.Extension
	}
	return "." + c.Extension
}

// Style declares the stylesheets compiled by the CSS framework compiler.
type Style struct {
	Root    string       `yaml:"root" json:"root"`
	Entries []StyleEntry `yaml:"entries" json:"entries"`
}

// StyleEntry maps one source stylesheet to one compiled output.
type StyleEntry struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`
}

// Tools declares the external tools and their minimum versions.
type Tools struct {
	Minifier ToolRequirement `yaml:"minifier,omitempty" json:"minifier,omitempty"`
	Compiler ToolRequirement `yaml:"compiler,omitempty" json:"compiler,omitempty"`
}

// ToolRequirement names an external CLI and the lowest version known to work.
type ToolRequirement struct {
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	MinVersion string `yaml:"min_version,omitempty" json:"min_version,omitempty"`
}

// Default returns the built-in layout: two hidden-asset links, four minify
// categories under public/ and the tailwind entry.
func Default() *Manifest {
	zero := 0
	return &Manifest{
		Version: CurrentVersion,
		Links: []Link{
			{Path: "backoffice/asset/embed_hidden/js/assets", Target: "../../embed/js"},
			{Path: "public/asset/embed_hidden/js/assets", Target: "../../embed/js"},
		},
		Minify: Minify{
			Root: "public",
			Categories: []Category{
				{Name: "js", Pattern: "asset/embed/js/*.js", Extension: ".js"},
				{Name: "hidden-js", Pattern: "asset/embed_hidden/js/*.js", Extension: ".js"},
				{Name: "css", Pattern: "asset/embed/css/*.css", Extension: ".css", CSSPrecision: &zero},
				{Name: "import-map", Pattern: "asset/embed_hidden/import_map/*.json", Extension: ".json"},
			},
		},
		Style: Style{
			Root: "public",
			Entries: []StyleEntry{
				{Input: "asset/css/tailwind.css", Output: "asset/embed/css/main.css"},
			},
		},
		Tools: Tools{
			Minifier: ToolRequirement{Name: "minify", MinVersion: "2.12.0"},
			Compiler: ToolRequirement{Name: "tailwindcss", MinVersion: "4.0.0"},
		},
	}
}
