package datev

import "testing"

func TestRegistryDetect(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name     string
		values   []string
		expected bool
		version  int
	}{
		{"registered version", []string{"EXTF", "700", "21"}, true, 700},
		{"unregistered version", []string{"EXTF", "510"}, false, 0},
		{"non-numeric version", []string{"EXTF", "abc"}, false, 0},
		{"too few values", []string{"EXTF"}, false, 0},
		{"empty values", nil, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := registry.Detect(tt.values)
			if ok != tt.expected {
				t.Fatalf("Detect(%v) = %v, expected %v", tt.values, ok, tt.expected)
			}
			if ok && def.Version != tt.version {
				t.Errorf("Detect(%v) version = %d, expected %d", tt.values, def.Version, tt.version)
			}
		})
	}
}

func TestRegistryRegisterDuplicate(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(V700()); err == nil {
		t.Errorf("Register of an already registered version expected an error")
	}
}

func TestRegistryRegisterCustomVersion(t *testing.T) {
	registry := NewRegistry()
	custom := &Definition{Version: 999, Fields: V700().Fields}
	if err := registry.Register(custom); err != nil {
		t.Fatalf("Register(999) error = %v", err)
	}

	def, ok := registry.Detect([]string{"EXTF", "999"})
	if !ok || def.Version != 999 {
		t.Errorf("Detect after Register = %v, %v, expected version 999", def, ok)
	}
}

func TestDefaultRegistry(t *testing.T) {
	a := DefaultRegistry()
	b := DefaultRegistry()
	if a != b {
		t.Errorf("DefaultRegistry() must return the same instance")
	}
	if _, ok := a.Definition(700); !ok {
		t.Errorf("DefaultRegistry() must register version 700")
	}
}
