package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectColumnLayout(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		want    bool
	}{
		{"flex", `<div style="display: flex">x</div>`, true},
		{"grid template", `<div style="grid-template-columns: 1fr 1fr">x</div>`, true},
		{"percent width", `<div style="width: 48%">x</div>`, true},
		{"float", `<div style="float: left">x</div>`, true},
		{"column class", `<div class="col-md-6">x</div>`, true},
		{"table with image", `<table><tr><td><img src="a.png"></td></tr></table>`, true},
		{"plain prose", `<p>just text</p><img src="a.png">`, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, DetectColumnLayout(tc.content))
		})
	}
}

func TestConvertTableLayout(t *testing.T) {
	t.Parallel()

	content := `<table><tr>` +
		`<td><img src="a.png"></td>` +
		`<td><img src="b.png"></td>` +
		`</tr></table>`
	got := PreserveColumnLayout(content)

	require.Contains(t, got, `<div class="image-grid two-column">`)
	require.Contains(t, got, `<img src="a.png">`)
	require.NotContains(t, got, "<table")
	require.Equal(t, 2, strings.Count(got, "image-with-caption"))
}

func TestConvertTableLayoutThreeCells(t *testing.T) {
	t.Parallel()

	content := `<table><tr>` +
		`<td><img src="a.png"></td>` +
		`<td><img src="b.png"></td>` +
		`<td>prose cell</td>` +
		`</tr></table>`
	got := PreserveColumnLayout(content)

	require.Contains(t, got, `image-grid three-column`)
	require.Contains(t, got, `<div>prose cell</div>`)
}

func TestConvertFlexLayout(t *testing.T) {
	t.Parallel()

	content := `<div style="display: flex; gap: 1rem"><div>a</div><div>b</div></div>`
	got := PreserveColumnLayout(content)

	require.Contains(t, got, `image-grid two-column`)
	require.Contains(t, got, `<div>a</div>`)
}

func TestConvertPercentageLayoutStripsWidths(t *testing.T) {
	t.Parallel()

	content := `<div style="width: 48%"><img src="a.png"></div>` +
		`<div style="width: 48%"><img src="b.png"></div>`
	got := PreserveColumnLayout(content)

	require.Contains(t, got, `image-grid two-column`)
	require.NotContains(t, got, "width: 48%")
}

func TestConvertFloatLayoutStripsFloats(t *testing.T) {
	t.Parallel()

	content := `<div style="float: left"><img src="a.png"></div>` +
		`<div style="float: right"><img src="b.png"></div>`
	got := PreserveColumnLayout(content)

	require.Contains(t, got, `image-grid two-column`)
	require.NotContains(t, got, "float: left")
	require.NotContains(t, got, "float: right")
}
