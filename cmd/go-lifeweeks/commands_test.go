package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

const lifeYAML = `version: 1
birthdate: "1990-06-15"
totalYears: 90
periods:
  - label: Childhood
    start: "1990-06-15"
    end: "1997-08-31"
dates:
  - date: "2015-05-20"
    title: Wedding
showToday: false
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))
	return path
}

func TestShareThenDecode(t *testing.T) {
	path := writeFile(t, "life.yaml", lifeYAML)

	var link bytes.Buffer
	require.NoError(t, printShareLink(&link, path))
	assert.True(t, strings.HasPrefix(link.String(), config.ShareBaseURL+"#config="))

	var out bytes.Buffer
	require.NoError(t, printDecoded(&out, strings.TrimSpace(link.String())))
	assert.Contains(t, out.String(), `"birthdate": "1990-06-15"`)
	assert.Contains(t, out.String(), `"title": "Wedding"`)
	assert.Contains(t, out.String(), `"showToday": false`)
}

func TestPrintDecoded_Invalid(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, printDecoded(&out, "https://example.com/#config=AAAA"))
	assert.Error(t, printDecoded(&out, "https://example.com/"))
	assert.Empty(t, out.String())
}

func TestPrintFeed(t *testing.T) {
	path := writeFile(t, "life.yaml", lifeYAML)

	var out bytes.Buffer
	require.NoError(t, printFeed(context.Background(), &out, path))
	assert.Contains(t, out.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, out.String(), "SUMMARY:Childhood")
	assert.Contains(t, out.String(), "SUMMARY:Wedding")
}

func TestCommands_FileErrors(t *testing.T) {
	var out bytes.Buffer

	assert.Error(t, printShareLink(&out, filepath.Join(t.TempDir(), "missing.json")))
	assert.Error(t, printFeed(context.Background(), &out, writeFile(t, "life.txt", lifeYAML)))
	assert.Error(t, printShareLink(&out, writeFile(t, "bad.json", `{"birthdate": 5}`)))
	assert.Empty(t, out.String())
}
