package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliTable = `miRNA,Conservation,Pan_troglodytes,Mus_musculus,Expression,heart,liver,Structure,Class_miRBase,Class_MirGeneDB,miRBase family,MirGeneDB family,family_name_mirbase,hsa-specificity,Repeat_Class,sequence
hsa-mir-1,TRUE,TRUE,TRUE,TRUE,2.0,0.3,TRUE,R,R,YES,YES,MIR-1,No,LINE,acgu
hsa-mir-2,FALSE,FALSE,,FALSE,0.1,,FALSE,D,,NO,NO,,Yes,no repeat,ggcc
hsa-mir-3,TRUE,TRUE,FALSE,TRUE,,3.0,TRUE,R,,NO,,,No,SINE/Alu,
`

func writeTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annotations.csv")
	require.NoError(t, os.WriteFile(path, []byte(cliTable), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func baseArgs(t *testing.T, sub string) []string {
	t.Helper()
	return []string{sub,
		"--table", writeTable(t),
		"--species", "Pan_troglodytes,Mus_musculus",
		"--tissues", "heart,liver",
	}
}

func TestCount(t *testing.T) {
	out, err := run(t, baseArgs(t, "count")...)
	require.NoError(t, err)
	assert.Equal(t, "Rows shown: 3 / 3\n", out)

	out, err = run(t, append(baseArgs(t, "count"), "--conservation", "passed")...)
	require.NoError(t, err)
	assert.Equal(t, "Rows shown: 2 / 3\n", out)

	out, err = run(t, append(baseArgs(t, "count"), "--hsa", "only_specific", "--search", "MIR-2")...)
	require.NoError(t, err)
	assert.Equal(t, "Rows shown: 1 / 3\n", out)
}

func TestCount_UnknownOption(t *testing.T) {
	_, err := run(t, append(baseArgs(t, "count"), "--structure", "maybe")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown structure option")
}

func TestCount_MissingTable(t *testing.T) {
	_, err := run(t, "count")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--table is required")
}

func TestExport_TSV(t *testing.T) {
	out, err := run(t, append(baseArgs(t, "export"), "--conservation", "not_passed")...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "miRNA\tConservation\tExpression\tStructure"))
	assert.True(t, strings.HasPrefix(lines[1], "hsa-mir-2\t"))
}

func TestExport_FASTAToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.fasta")
	out, err := run(t, append(baseArgs(t, "export"), "--format", "fasta", "--output", dest)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, ">hsa-mir-1\nACGU\n>hsa-mir-2\nGGCC\n", string(data))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := run(t, append(baseArgs(t, "export"), "--format", "xlsx")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestOptions(t *testing.T) {
	out, err := run(t, baseArgs(t, "options")...)
	require.NoError(t, err)
	assert.Contains(t, out, "repeat: LINE | SINE/Alu | no repeat")
	assert.Contains(t, out, "species: P. troglodytes | M. musculus")
	assert.Contains(t, out, "tissues: heart | liver")
}
