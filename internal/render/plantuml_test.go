// ABOUTME: Tests for PlantUML renderer command construction
// ABOUTME: Does not execute the external renderer

package render

import (
	"testing"

	"github.com/ahmedalalousi/hwVisualiser/internal/config"
)

func TestCommandArgsWithJar(t *testing.T) {
	r := &Renderer{JavaBin: "java", PlantUMLJar: "/opt/plantuml.jar", PlantUMLBin: "plantuml"}

	args := r.commandArgs("diagram.puml")
	want := []string{"java", "-jar", "/opt/plantuml.jar", "-tsvg", "diagram.puml"}
	if len(args) != len(want) {
		t.Fatalf("args = %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestCommandArgsWithBinary(t *testing.T) {
	r := &Renderer{JavaBin: "java", PlantUMLBin: "plantuml"}

	args := r.commandArgs("diagram.puml")
	want := []string{"plantuml", "-tsvg", "diagram.puml"}
	if len(args) != len(want) {
		t.Fatalf("args = %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{JavaBin: "java21", PlantUMLJar: "p.jar", PlantUMLBin: "pl"}
	r := NewFromConfig(cfg)

	if r.JavaBin != "java21" || r.PlantUMLJar != "p.jar" || r.PlantUMLBin != "pl" {
		t.Errorf("renderer = %+v", r)
	}
}
