package image

import (
	"bufio"
	"io"
	"strconv"

	"github.com/arloliu/devimg/property"
)

// Print writes a human-readable report of the image to w: header fields,
// entry names and every property set with its decoded properties.
//
// Write errors are ignored; the report is a debugging aid.
func (img *Image) Print(w io.Writer) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	if img == nil || img.bin == nil {
		_, _ = bw.WriteString("  --- Image <nil>\n")
		return
	}

	bin := img.bin
	p := func(parts ...string) {
		for _, s := range parts {
			_, _ = bw.WriteString(s)
		}
	}

	p("  --- Image ", strconv.FormatUint(img.id, 10), "\n")
	p("    Version  : ", strconv.Itoa(int(bin.Version)), "\n")
	p("    Kind     : ", strconv.Itoa(int(bin.Kind)), " (", bin.Kind.String(), ")\n")
	p("    Format   : ", strconv.Itoa(int(img.format)), " (", img.format.String(), ")\n")
	p("    Target   : ", bin.TargetSpec, "\n")
	p("    Bin size : ", strconv.Itoa(len(bin.Binary)), "\n")
	p("    Compile options : ", nullable(bin.CompileOptions), "\n")
	p("    Link options    : ", nullable(bin.LinkOptions), "\n")

	p("    Entries  : ")
	for e := range bin.AllEntries() {
		p(e.Name, " ")
	}
	p("\n")

	p("    Properties [", strconv.Itoa(len(bin.PropertySets)), "]:\n")
	for set := range bin.AllPropertySets() {
		p("      Category ", set.Name, " [", strconv.Itoa(len(set.Properties)), "]:\n")
		for i := range set.Properties {
			p("        ", property.Wrap(&set.Properties[i]).String(), "\n")
		}
	}
}

func nullable(s *string) string {
	if s == nil {
		return "NULL"
	}

	return *s
}
