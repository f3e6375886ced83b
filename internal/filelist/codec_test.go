package filelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, `["/a/b.pdf","/a/c.jpg"]`, Encode([]string{"/a/b.pdf", "/a/c.jpg"}))
	assert.Equal(t, "[]", Encode(nil))
	assert.Equal(t, "[]", Encode([]string{}))
}

func TestDecodeNeverFails(t *testing.T) {
	for _, in := range []string{"", " ", "\n\t", "not json", "null", "{}", `"x"`, `["a",`, "[1,2]"} {
		got := Decode(in)
		assert.NotNil(t, got, "input %q", in)
		assert.Empty(t, got, "input %q", in)
	}
}

func TestDecodeSkipsNulls(t *testing.T) {
	assert.Equal(t, []string{"/a"}, Decode(`["/a",null]`))
	assert.Equal(t, []string{"/a", "/b"}, Decode(`[null,"/a",null,"/b"]`))
	assert.Equal(t, []string{}, Decode(`[null]`))
	assert.Equal(t, `["/a"]`, RemovePath(`["/a",null,"/b"]`, "/b"))
}

// Gson escapes = and ' as \u003d and \u0027 in the columns it writes.
func TestDecodeGsonEscapes(t *testing.T) {
	stored := `["/files/x\u003dy.pdf","/files/o\u0027brien.jpg","/files/a\u0026b\u003c1\u003e.pdf"]`
	want := []string{"/files/x=y.pdf", "/files/o'brien.jpg", "/files/a&b<1>.pdf"}
	assert.Equal(t, want, Decode(stored))

	// Re-encoding keeps = and ' literal; readers decode both forms alike.
	assert.Equal(t, want, Decode(Encode(Decode(stored))))
	assert.Contains(t, Encode(want), "x=y.pdf")
}

func TestRoundTrip(t *testing.T) {
	lists := [][]string{
		{"/a/b.pdf"},
		{"/z.png", "/a.png", "/z.png"},
		{`/with "quotes"/and\backslash`, "/unicode/قضية.pdf", "<&>", ""},
		{"/data/user/0/files/documents/20240101_120000_contract.pdf", "/x y/z"},
	}
	for _, paths := range lists {
		encoded := Encode(paths)
		assert.Equal(t, paths, Decode(encoded))
		assert.Equal(t, encoded, Encode(Decode(encoded)), "re-encoding must be stable")
	}
}

func TestAddPath(t *testing.T) {
	assert.Equal(t, `["/a"]`, AddPath("", "/a"))
	assert.Equal(t, `["/a"]`, AddPath("garbage", "/a"))
	assert.Equal(t, `["/a","/b","/a"]`, AddPath(`["/a","/b"]`, "/a"))
}

func TestRemovePath(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		path     string
		want     string
	}{
		{name: "first match only", existing: `["/a","/b","/a"]`, path: "/a", want: `["/b","/a"]`},
		{name: "last element", existing: `["/a","/b"]`, path: "/b", want: `["/a"]`},
		{name: "absent", existing: `["/a"]`, path: "/c", want: `["/a"]`},
		{name: "only element", existing: `["/a"]`, path: "/a", want: "[]"},
		{name: "blank column", existing: "", path: "/a", want: "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemovePath(tt.existing, tt.path))
		})
	}
}
