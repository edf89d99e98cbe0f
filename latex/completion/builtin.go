package completion

var builtinCommands = []string{
	"author", "autoref", "begin", "bibitem", "bibliography", "bibliographystyle",
	"caption", "centering", "chapter", "cite", "date", "documentclass", "emph",
	"end", "eqref", "footnote", "frac", "hline", "hspace", "include",
	"includegraphics", "input", "item", "label", "ldots", "maketitle",
	"newcommand", "newenvironment", "newpage", "noindent", "pageref",
	"paragraph", "part", "ref", "renewcommand", "section", "subsection",
	"subsubsection", "tableofcontents", "textbf", "textit", "texttt", "title",
	"url", "usepackage", "vspace",
}

var builtinEnvironments = []string{
	"abstract", "align", "align*", "center", "description", "document",
	"enumerate", "equation", "equation*", "figure", "flushleft", "flushright",
	"itemize", "minipage", "quote", "tabular", "table", "thebibliography",
	"verbatim",
}

var builtinPackages = []string{
	"amsmath", "amssymb", "babel", "biblatex", "booktabs", "caption",
	"fontenc", "geometry", "graphicx", "hyperref", "inputenc", "listings",
	"natbib", "tikz", "xcolor",
}

var (
	labelCommands    = []string{"ref", "eqref", "pageref", "autoref", "cref"}
	citeCommands     = []string{"cite", "citep", "citet", "nocite"}
	includeCommands  = []string{"input", "include", "includeonly"}
	graphicsCommands = []string{"includegraphics"}
	bibCommands      = []string{"bibliography", "addbibresource"}
)

var graphicExtensions = []string{".png", ".pdf", ".jpg", ".eps", ".ps"}
