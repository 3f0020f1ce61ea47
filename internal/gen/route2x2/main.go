// Command route2x2 generates the routing functions for one host channel
// pair against a 2-channel float32 frame buffer, one per combination of
// the four pins involved.
//
//	go run ./internal/gen/route2x2 -o pkg/framework/pins/route2x2_gen.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"strings"
)

const header = `// Code generated by go run ./internal/gen/route2x2; DO NOT EDIT.

package pins
`

func main() {
	out := flag.String("o", "route2x2_gen.go", "output file")
	flag.Parse()

	src, err := format.Source(generate())
	if err != nil {
		log.Fatalf("format generated code: %v", err)
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
}

func generate() []byte {
	var b bytes.Buffer
	b.WriteString(header)

	table(&b, "toFrame", "func(dst, src []float32)",
		"toFrame routes one host pair into a 2-channel frame buffer, adding to\n"+
			"// dst. Index bits: 8 host L to plugin 0, 4 host R to plugin 0, 2 host L\n"+
			"// to plugin 1, 1 host R to plugin 1.")
	table(&b, "fromFrame", "func(dst, src []float32)",
		"fromFrame routes a 2-channel frame buffer into one host pair, replacing\n"+
			"// routed lanes with the mean of their sources. Index bits: 8 plugin 0 to\n"+
			"// host L, 4 plugin 1 to host L, 2 plugin 0 to host R, 1 plugin 1 to host R.")
	table(&b, "fromFrameWetDry", "func(dst, src []float32, wet, dry float32)",
		"fromFrameWetDry is fromFrame blending into the dry-scaled host signal.")

	for i := 1; i < 16; i++ {
		toFunc(&b, i)
	}
	for i := 1; i < 16; i++ {
		fromFunc(&b, i, false)
	}
	for i := 1; i < 16; i++ {
		fromFunc(&b, i, true)
	}
	return b.Bytes()
}

func name(prefix string, i int) string {
	return fmt.Sprintf("%s%04b", prefix, i)
}

func table(b *bytes.Buffer, prefix, sig, doc string) {
	fmt.Fprintf(b, "\n// %s\nvar %s = [16]%s{\n\tnil,\n", doc, prefix, sig)
	for i := 1; i < 16; i++ {
		fmt.Fprintf(b, "\t%s,\n", name(prefix, i))
	}
	b.WriteString("}\n")
}

// loads declares the frame samples a body reads.
func loads(b *bytes.Buffer, a, c string, useA, useC bool) {
	switch {
	case useA && useC:
		fmt.Fprintf(b, "\t\t%s, %s := src[s], src[s+1]\n", a, c)
	case useA:
		fmt.Fprintf(b, "\t\t%s := src[s]\n", a)
	case useC:
		fmt.Fprintf(b, "\t\t%s := src[s+1]\n", c)
	}
}

func terms(a, c string, useA, useC bool) []string {
	var t []string
	if useA {
		t = append(t, a)
	}
	if useC {
		t = append(t, c)
	}
	return t
}

func toFunc(b *bytes.Buffer, i int) {
	l0, r0, l1, r1 := i&8 != 0, i&4 != 0, i&2 != 0, i&1 != 0
	fmt.Fprintf(b, "\nfunc %s(dst, src []float32) {\n", name("toFrame", i))
	b.WriteString("\tsrc = src[:len(dst)]\n")
	b.WriteString("\tfor s := 0; s < len(dst); s += 2 {\n")
	loads(b, "l", "r", l0 || l1, r0 || r1)
	if t := terms("l", "r", l0, r0); len(t) > 0 {
		fmt.Fprintf(b, "\t\tdst[s] += %s\n", strings.Join(t, " + "))
	}
	if t := terms("l", "r", l1, r1); len(t) > 0 {
		fmt.Fprintf(b, "\t\tdst[s+1] += %s\n", strings.Join(t, " + "))
	}
	b.WriteString("\t}\n}\n")
}

func fromFunc(b *bytes.Buffer, i int, wetDry bool) {
	p0l, p1l, p0r, p1r := i&8 != 0, i&4 != 0, i&2 != 0, i&1 != 0
	if wetDry {
		fmt.Fprintf(b, "\nfunc %s(dst, src []float32, wet, dry float32) {\n", name("fromFrameWetDry", i))
	} else {
		fmt.Fprintf(b, "\nfunc %s(dst, src []float32) {\n", name("fromFrame", i))
	}
	b.WriteString("\tsrc = src[:len(dst)]\n")
	b.WriteString("\tfor s := 0; s < len(dst); s += 2 {\n")
	loads(b, "p0", "p1", p0l || p0r, p1l || p1r)
	lane(b, "s", "ml", terms("p0", "p1", p0l, p1l), wetDry)
	lane(b, "s+1", "mr", terms("p0", "p1", p0r, p1r), wetDry)
	b.WriteString("\t}\n}\n")
}

func lane(b *bytes.Buffer, idx, mean string, t []string, wetDry bool) {
	var v string
	switch len(t) {
	case 0:
		return
	case 1:
		v = t[0]
	default:
		if !wetDry {
			fmt.Fprintf(b, "\t\tdst[%s] = (%s) / 2\n", idx, strings.Join(t, " + "))
			return
		}
		fmt.Fprintf(b, "\t\t%s := (%s) / 2\n", mean, strings.Join(t, " + "))
		v = mean
	}
	if wetDry {
		fmt.Fprintf(b, "\t\tdst[%s] = dst[%s]*dry + %s*wet\n", idx, idx, v)
	} else {
		fmt.Fprintf(b, "\t\tdst[%s] = %s\n", idx, v)
	}
}
