package typegen

import (
	"regexp"
	"strconv"
	"strings"
)

// bareIdentPattern decides whether a field name can be emitted unquoted.
var bareIdentPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func quoteFieldName(name string) string {
	if bareIdentPattern.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}

// bucketSuffix maps an outcome class to its declaration name component.
var bucketSuffix = map[string]string{
	"2xx":   "Success2xx",
	"3xx":   "Redirect3xx",
	"4xx":   "ClientError4xx",
	"5xx":   "ServerError5xx",
	"other": "OtherStatus",
}

// RenderedGroup pairs an outcome bucket with its aggregated field map, ready
// for declaration rendering.
type RenderedGroup struct {
	Class   string
	IsError bool
	Fields  []FieldType
}

// DeclarationName derives the declaration name for one outcome group:
// {base}{BucketSuffix}{"Error"?}Response.
func DeclarationName(baseName, class string, isError bool) string {
	suffix, ok := bucketSuffix[class]
	if !ok {
		suffix = bucketSuffix["other"]
	}
	name := baseName + suffix
	if isError {
		name += "Error"
	}
	return name + "Response"
}

// RenderDeclarations emits one structural declaration per group, in the
// fixed group order produced by Bucket, joined by blank lines. The returned
// bool is false when there is nothing to declare, so the caller can preserve
// whatever it previously stored.
func RenderDeclarations(baseName string, groups []RenderedGroup) (string, bool) {
	if len(groups) == 0 {
		return "", false
	}

	decls := make([]string, 0, len(groups))
	for _, g := range groups {
		var b strings.Builder
		b.WriteString("interface ")
		b.WriteString(DeclarationName(baseName, g.Class, g.IsError))
		b.WriteString(" {")
		if len(g.Fields) == 0 {
			b.WriteString("}")
			decls = append(decls, b.String())
			continue
		}
		b.WriteString("\n")
		for _, f := range g.Fields {
			b.WriteString("  ")
			b.WriteString(quoteFieldName(f.Name))
			b.WriteString(": ")
			b.WriteString(f.Type)
			b.WriteString(";\n")
		}
		b.WriteString("}")
		decls = append(decls, b.String())
	}
	return strings.Join(decls, "\n\n"), true
}
