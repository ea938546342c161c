package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type alertRule struct {
	Alert       string            `yaml:"alert"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      map[string]string `yaml:"labels"`
	Annotations map[string]string `yaml:"annotations"`
}

type alertGroup struct {
	Name  string      `yaml:"name"`
	Rules []alertRule `yaml:"rules"`
}

type alertSpec struct {
	Groups []alertGroup `yaml:"groups"`
}

func TestPOSAlertRules(t *testing.T) {
	path := filepath.Join("..", "..", "deploy", "prometheus", "alerts", "pos.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read alert file: %v", err)
	}

	var spec alertSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		t.Fatalf("failed to unmarshal alert file: %v", err)
	}

	var posGroup *alertGroup
	for i := range spec.Groups {
		if spec.Groups[i].Name == "pos" {
			posGroup = &spec.Groups[i]
			break
		}
	}
	if posGroup == nil {
		t.Fatal("pos alert group missing")
	}

	expected := map[string]string{
		"HighErrorRate":    "critical",
		"HighLatency":      "warning",
		"CheckoutsStalled": "warning",
	}
	if len(posGroup.Rules) != len(expected) {
		t.Fatalf("expected %d rules, got %d", len(expected), len(posGroup.Rules))
	}

	for _, rule := range posGroup.Rules {
		severity, ok := expected[rule.Alert]
		if !ok {
			t.Fatalf("unexpected rule %q", rule.Alert)
		}
		if rule.Labels["severity"] != severity {
			t.Fatalf("rule %s severity mismatch: %s", rule.Alert, rule.Labels["severity"])
		}
		if !strings.Contains(rule.Expr, "pos_") {
			t.Fatalf("rule %s must query pos_ metrics: %s", rule.Alert, rule.Expr)
		}
		if rule.Annotations["summary"] == "" || rule.Annotations["description"] == "" {
			t.Fatalf("rule %s must include summary and description annotations", rule.Alert)
		}
	}
}
