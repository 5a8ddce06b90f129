package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appcontext "github.com/SeakMengs/FacultyCert/internal/app_context"
	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/env"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
)

func init() {
	env.LoadEnv(".env")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	professors := flag.String("professor", "", "professor id, or a comma separated list of ids")
	templateID := flag.String("template", "", "template id, the default template when empty")
	recipient := flag.String("recipient", "", "recipient line printed on the certificate")
	currentTerm := flag.String("current-term", "", "term code that marks the current term, e.g. 202425")
	terms := flag.String("terms", "", "comma separated term codes to include, all terms when empty")
	noQR := flag.Bool("no-qr", false, "omit the verification QR code")
	outDir := flag.String("out", "certificates", "output directory")
	asZip := flag.Bool("zip", false, "write a single zip archive instead of separate files")
	flag.Parse()

	professorIDs := splitList(*professors)
	if len(professorIDs) == 0 {
		fmt.Fprintln(os.Stderr, "-professor is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()

	app, cleanup, err := appcontext.Bootstrap(&cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer cleanup()

	opts := facultycert.Options{
		TemplateID:  *templateID,
		Recipient:   *recipient,
		TermFilter:  splitList(*terms),
		CurrentTerm: *currentTerm,
	}
	if *noQR {
		includeQR := false
		opts.IncludeQR = &includeQR
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(len(professorIDs))*time.Minute)
	defer cancel()

	result := app.Issuer.BulkGenerate(ctx, professorIDs, opts, "")
	for _, e := range result.Errors {
		logger.Errorf("Professor %s: %s", e.ProfessorID, e.Error)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal(err)
	}

	entries := make([]util.ZipEntry, 0, len(result.Certificates))
	for _, cert := range result.Certificates {
		entries = append(entries, util.ZipEntry{
			Name:     facultycert.CertificateFileName(cert.ProfessorID, cert.VerificationCode),
			Data:     result.Documents[cert.ID],
			Modified: cert.GeneratedAt,
		})
	}

	if *asZip {
		path := filepath.Join(*outDir, fmt.Sprintf("certificates_%s.zip", time.Now().Format("20060102_150405")))
		f, err := os.Create(path)
		if err != nil {
			logger.Fatal(err)
		}
		if err := util.WriteZip(f, entries); err != nil {
			f.Close()
			logger.Fatal(err)
		}
		if err := f.Close(); err != nil {
			logger.Fatal(err)
		}
		logger.Infof("Wrote %s", path)
	} else {
		for _, e := range entries {
			path := filepath.Join(*outDir, e.Name)
			if err := os.WriteFile(path, e.Data, 0o644); err != nil {
				logger.Fatal(err)
			}
			logger.Infof("Wrote %s", path)
		}
	}

	fmt.Printf("Generated %d certificates, %d failed\n", result.SuccessCount, result.ErrorCount)
	if result.ErrorCount > 0 {
		os.Exit(1)
	}
}
