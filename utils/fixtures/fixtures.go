package fixtures

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"testing"

	"note/api/models"
	"note/api/utils"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

// DemoVcf is a two sample ANNOVAR output with a single gene-model pass.
const DemoVcf = `##fileformat=VCFv4.2
##INFO=<ID=AC,Number=A,Type=Integer,Description="Allele count in genotypes">
##INFO=<ID=AF,Number=A,Type=Float,Description="Allele Frequency">
##INFO=<ID=ANNOVAR_DATE,Number=1,Type=String,Description="Flag the start of ANNOVAR annotation for one alternative allele">
##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">
##FORMAT=<ID=DP,Number=1,Type=Integer,Description="Approximate read depth">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	NA00001	NA00002
chr1	100	.	A	G	50	PASS	AC=1;AF=0.5;ANNOVAR_DATE=x;Func.refGene=exonic	GT:DP	0/1:20	1/1:15
`

// AnnotatedVcf carries three gene-model passes per row, as written by
// table_annovar with `--protocol refGene,ensGene,knownGene`.
const AnnotatedVcf = `##fileformat=VCFv4.2
##reference=GRCh38
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	S1
chr17	43092919	rs80357713	T	C	812.77	PASS	AC=2;AF=1.00;AN=2;DP=25;FS=0.000;MQ=60.00;QD=32.51;SOR=0.693;ANNOVAR_DATE=2020-06-08;Func.refGene=exonic;Gene.refGene=BRCA1;GeneDetail.refGene=.;ExonicFunc.refGene=nonsynonymous_SNV;AAChange.refGene=BRCA1:NM_007294:exon10:c.A3113G:p.E1038G;ALLELE_END;ANNOVAR_DATE=2020-06-08;Func.ensGene=exonic;Gene.ensGene=ENSG00000012048;GeneDetail.ensGene=.;ExonicFunc.ensGene=nonsynonymous_SNV;AAChange.ensGene=ENSG00000012048:ENST00000357654:exon10:c.A3113G:p.E1038G;ALLELE_END;ANNOVAR_DATE=2020-06-08;Func.knownGene=exonic;Gene.knownGene=BRCA1;GeneDetail.knownGene=.;ExonicFunc.knownGene=nonsynonymous_SNV;AAChange.knownGene=UNKNOWN;ALLELE_END	GT:AD:DP:GQ:PL	1/1:0,25:25:75:841,75,0
chr3	1000	.	G	A,T	.	q10;s50	AC=1,1;AF=0.5,0.5;AN=2;ANNOVAR_DATE=2020-06-08;Func.refGene=intergenic;Gene.refGene=NONE\x3bCHL1;GeneDetail.refGene=dist\x3dNONE\x3bdist\x3d1234;ExonicFunc.refGene=.;AAChange.refGene=.;ALLELE_END	GT:DP	1|2:12
`

func InitConfig() *models.Config {
	var cfg models.Config

	// get this file's path
	_, filename, _, _ := runtime.Caller(0)
	folderpath := path.Dir(filename)

	// retrieve the fixtures' test.config
	f, err := os.Open(fmt.Sprintf("%s/test.config.yml", folderpath))
	if err != nil {
		processError(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&cfg)
	if err != nil {
		processError(err)
	}

	return &cfg
}

func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}

// InitConfigWithDirectories returns the test config pointed at fresh
// temporary VCF and output directories.
func InitConfigWithDirectories(t *testing.T) *models.Config {
	cfg := InitConfig()
	cfg.Api.VcfPath = t.TempDir()
	cfg.Api.OutputPath = t.TempDir()
	return cfg
}

// WriteGzipFile compresses content into dir/name and returns the full path.
func WriteGzipFile(t *testing.T, dir string, name string, content string) string {
	filePath := filepath.Join(dir, name)

	w, err := utils.CreateGzipFile(filePath)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return filePath
}

// ReadGzipLines decompresses filePath and returns its lines.
func ReadGzipLines(t *testing.T, filePath string) []string {
	r, err := utils.OpenGzipFile(filePath)
	require.NoError(t, err)
	defer r.Close()

	lines := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())

	return lines
}
