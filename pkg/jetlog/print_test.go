package jetlog

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrinting(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	l := New(&buf)

	l.HeaderPrintf("Resolved %s", "prod")
	l.IndentedPrintln("Server: %s", "https://k8s")
	l.WarningPrintf("loose permissions on %s", "/tmp/config")
	l.Println("a", 1, true)

	assert.Equal(t,
		"# Resolved prod\n"+
			"\tServer: https://k8s\n"+
			"WARNING: loose permissions on /tmp/config\n"+
			"a 1 true\n",
		buf.String(),
	)
}

func TestWithSpinnerFuncPrintWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	ran := false
	l.WithSpinnerFuncPrint(func() { ran = true }, "Reading kubeconfig")

	assert.True(t, ran)
	assert.Empty(t, buf.String())
}
