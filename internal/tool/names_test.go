package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseName_KnownNames(t *testing.T) {
	for _, n := range Names {
		got, ok := ParseName(string(n))
		assert.True(t, ok, n)
		assert.Equal(t, n, got)
	}
}

func TestParseName_UnknownName(t *testing.T) {
	_, ok := ParseName("fs_delete")
	assert.False(t, ok)

	_, ok = ParseName("")
	assert.False(t, ok)
}

func TestName_Kind(t *testing.T) {
	assert.Equal(t, KindShell, NameExecuteShell.Kind())
	assert.Equal(t, KindReadFile, NameReadFile.Kind())
	assert.Equal(t, KindWriteFile, NameWriteFile.Kind())
	assert.Equal(t, KindMakeDir, NameMakeDir.Kind())
	assert.Equal(t, KindListDir, NameListDir.Kind())
	assert.Equal(t, Kind(""), Name("bogus").Kind())
}

func TestStringParams_AllRequired(t *testing.T) {
	s := StringParams([]string{"path", "content"}, map[string]string{"path": "p"})

	assert.Equal(t, TypeObject, s.Type)
	assert.Equal(t, []string{"path", "content"}, s.Required)
	assert.Equal(t, TypeString, s.Properties["path"].Type)
	assert.Equal(t, "p", s.Properties["path"].Description)
	assert.Equal(t, TypeString, s.Properties["content"].Type)
}
