package lst_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ardnew/apml/lang/lst"
)

// benchDoc approximates a typical package definition file.
var benchDoc = strings.Repeat(
	"# package metadata\n"+
		"PKGNAME=example\n"+
		"PKGVER=1.2.3\n"+
		"PKGDES=\"An example package with ${PKGNAME:-no name}\"\n"+
		"SRCS=\"tbl::https://example.com/${PKGNAME}-${PKGVER}.tar.gz\"\n"+
		"CHKSUMS=\"sha256::0123456789abcdef\"\n"+
		"\n",
	64)

func BenchmarkParse(b *testing.B) {
	ctx := context.Background()

	b.SetBytes(int64(len(benchDoc)))

	for b.Loop() {
		if _, err := lst.Parse(ctx, benchDoc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScan(b *testing.B) {
	b.SetBytes(int64(len(benchDoc)))

	for b.Loop() {
		if _, err := lst.Scan(benchDoc); err != nil {
			b.Fatal(err)
		}
	}
}
