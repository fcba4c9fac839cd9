// Command xformgate arbitrates between two competing registration
// estimates: it gates the refined transform against the fallback and emits
// the selected transform/report pair plus the audit metrics as JSON.
//
// Usage:
//
//	xformgate -strategy surface_boundary \
//	    -refined-mat bbr.mat -refined-report bbr.svg \
//	    -fallback-mat coreg.mat -fallback-report coreg.svg \
//	    [-config thresholds.yaml] [-out-selected out.mat] \
//	    [-out-forward fwd.mat] [-out-inverse inv.mat]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ahrav/go-xformgate/infrastructure/arbitration"
	"github.com/ahrav/go-xformgate/infrastructure/convert"
	"github.com/ahrav/go-xformgate/infrastructure/registrar"
	"github.com/ahrav/go-xformgate/infrastructure/xfm"
	"github.com/ahrav/go-xformgate/internal/application"
	"github.com/ahrav/go-xformgate/internal/domain"
)

func main() {
	var (
		configPath     = flag.String("config", "", "Optional YAML config with gate thresholds")
		strategyName   = flag.String("strategy", application.StrategySurfaceBoundary, "Arbitration strategy: surface_boundary or intensity_boundary")
		dof            = flag.Int("dof", 0, "Degrees of freedom of the refined registration (6, 9, or 12); overrides the config value")
		refinedMat     = flag.String("refined-mat", "", "Path to the refined candidate's 4x4 transform file")
		refinedReport  = flag.String("refined-report", "", "Path to the refined candidate's diagnostic report")
		refinedMethod  = flag.String("refined-method", "refined", "Label for the refined registration method")
		fallbackMat    = flag.String("fallback-mat", "", "Path to the fallback candidate's 4x4 transform file")
		fallbackReport = flag.String("fallback-report", "", "Path to the fallback candidate's diagnostic report")
		fallbackMethod = flag.String("fallback-method", "fallback", "Label for the fallback registration method")
		outSelected    = flag.String("out-selected", "", "Optional path to write the selected transform")
		outForward     = flag.String("out-forward", "", "Optional path to write the forward consumer-convention transform")
		outInverse     = flag.String("out-inverse", "", "Optional path to write the inverse consumer-convention transform")
	)
	flag.Parse()

	if *refinedMat == "" || *fallbackMat == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := application.DefaultConfig()
	if *configPath != "" {
		loaded, err := application.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	strategyDOF := 6
	for _, sc := range cfg.Strategies {
		if sc.Name == *strategyName {
			strategyDOF = sc.DOF
		}
	}
	if *dof != 0 {
		strategyDOF = *dof
	}

	// Consumers of the CLI share the native convention; the pipeline still
	// exercises the full forward/inverse conversion boundary.
	var (
		strategy application.Strategy
		err      error
	)
	switch *strategyName {
	case application.StrategySurfaceBoundary:
		strategy, err = application.SurfaceBoundaryStrategy(strategyDOF, convert.NewPassthrough("native", true))
	case application.StrategyIntensityBoundary:
		strategy, err = application.IntensityBoundaryStrategy(strategyDOF, convert.NewPassthrough("native", false))
	default:
		log.Fatalf("Unknown strategy: %s", *strategyName)
	}
	if err != nil {
		log.Fatalf("Failed to build strategy: %v", err)
	}

	refined, err := registrar.NewFileRegistrar(*refinedMethod, strategyDOF, *refinedMat, *refinedReport)
	if err != nil {
		log.Fatalf("Failed to build refined registrar: %v", err)
	}
	fallbackDOF := strategyDOF
	if strategy.Name == application.StrategyIntensityBoundary {
		// The intensity-boundary fallback is the rigid initialization.
		fallbackDOF = 6
	}
	fallback, err := registrar.NewFileRegistrar(*fallbackMethod, fallbackDOF, *fallbackMat, *fallbackReport)
	if err != nil {
		log.Fatalf("Failed to build fallback registrar: %v", err)
	}

	gate, err := arbitration.NewQualityGate("gate", cfg.Gate, nil)
	if err != nil {
		log.Fatalf("Failed to build quality gate: %v", err)
	}
	selector, err := arbitration.NewCandidateSelector("selector")
	if err != nil {
		log.Fatalf("Failed to build candidate selector: %v", err)
	}

	pipeline, err := application.NewPipeline(strategy, refined, fallback, gate, selector, nil)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	outcome, err := pipeline.Run(context.Background())
	if err != nil {
		log.Fatalf("Arbitration failed: %v", err)
	}

	if *outSelected != "" {
		if err := xfm.Write(*outSelected, outcome.Selection.Transform); err != nil {
			log.Fatalf("Failed to write selected transform: %v", err)
		}
	}
	if *outForward != "" {
		if err := xfm.Write(*outForward, outcome.Forward); err != nil {
			log.Fatalf("Failed to write forward transform: %v", err)
		}
	}
	if *outInverse != "" {
		if err := xfm.Write(*outInverse, outcome.Inverse); err != nil {
			log.Fatalf("Failed to write inverse transform: %v", err)
		}
	}

	summary := struct {
		Strategy string                `json:"strategy"`
		DOF      int                   `json:"dof"`
		Choice   domain.Choice         `json:"choice"`
		Verdict  domain.QualityVerdict `json:"verdict"`
		Report   string                `json:"report"`
	}{
		Strategy: strategy.Name,
		DOF:      strategyDOF,
		Choice:   outcome.Selection.Choice,
		Verdict:  outcome.Selection.Verdict,
		Report:   outcome.Selection.Report,
	}
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode summary: %v", err)
	}
	fmt.Println(string(out))
}
