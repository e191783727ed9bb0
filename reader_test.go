// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt_test

import (
	"testing"

	"code.hybscloud.com/efkt"
)

type Config struct {
	Debug bool
	Port  int
}

func TestReaderAsk(t *testing.T) {
	comp := efkt.AskReader(func(x int) efkt.Eff[int] {
		return efkt.Pure(x)
	})

	result := efkt.RunReader[int, int](42, comp)
	if result != 42 {
		t.Fatalf("got %d, want 42", result)
	}
}

func TestMapReader(t *testing.T) {
	comp := efkt.MapReader[Config, int](func(c Config) int {
		return c.Port
	})

	result := efkt.RunReader[Config, int](Config{Debug: true, Port: 8080}, comp)
	if result != 8080 {
		t.Fatalf("got %d, want 8080", result)
	}
}

func TestReaderChained(t *testing.T) {
	// Ask twice and combine
	comp := efkt.AskReader(func(x int) efkt.Eff[int] {
		return efkt.AskReader(func(y int) efkt.Eff[int] {
			return efkt.Pure(x + y)
		})
	})

	result := efkt.RunReader[int, int](21, comp)
	if result != 42 {
		t.Fatalf("got %d, want 42", result)
	}
}

func TestReaderWithConfig(t *testing.T) {
	comp := efkt.Bind(
		efkt.MapReader[Config, bool](func(c Config) bool { return c.Debug }),
		func(debug bool) efkt.Eff[string] {
			if debug {
				return efkt.Pure("debug mode")
			}
			return efkt.Pure("production")
		},
	)

	result := efkt.RunReader[Config, string](Config{Debug: true, Port: 80}, comp)
	if result != "debug mode" {
		t.Fatalf("got %q, want %q", result, "debug mode")
	}

	result = efkt.RunReader[Config, string](Config{Debug: false, Port: 80}, comp)
	if result != "production" {
		t.Fatalf("got %q, want %q", result, "production")
	}
}

func TestReaderPure(t *testing.T) {
	// Pure should ignore the environment
	comp := efkt.Pure(100)

	result := efkt.RunReader[int, int](42, comp)
	if result != 100 {
		t.Fatalf("got %d, want 100", result)
	}
}

func TestReaderBind(t *testing.T) {
	// Bind should thread the environment through
	comp := efkt.AskReader(func(env int) efkt.Eff[int] {
		return efkt.Pure(env * 2)
	})

	result := efkt.RunReader[int, int](21, comp)
	if result != 42 {
		t.Fatalf("got %d, want 42", result)
	}
}

func TestExprReaderAsk(t *testing.T) {
	comp := efkt.ExprBind(efkt.ExprPerform(efkt.Ask[int]{}), func(x int) efkt.Expr[int] {
		return efkt.ExprReturn(x)
	})

	result := efkt.RunReaderExpr[int, int](42, comp)
	if result != 42 {
		t.Fatalf("got %d, want 42", result)
	}
}

func TestExprMapReader(t *testing.T) {
	comp := efkt.ExprMap(efkt.ExprPerform(efkt.Ask[Config]{}), func(c Config) int {
		return c.Port
	})

	result := efkt.RunReaderExpr[Config, int](Config{Debug: true, Port: 8080}, comp)
	if result != 8080 {
		t.Fatalf("got %d, want 8080", result)
	}
}

func TestExprReaderChained(t *testing.T) {
	// Ask twice and combine
	comp := efkt.ExprBind(efkt.ExprPerform(efkt.Ask[int]{}), func(x int) efkt.Expr[int] {
		return efkt.ExprBind(efkt.ExprPerform(efkt.Ask[int]{}), func(y int) efkt.Expr[int] {
			return efkt.ExprReturn(x + y)
		})
	})

	result := efkt.RunReaderExpr[int, int](21, comp)
	if result != 42 {
		t.Fatalf("got %d, want 42", result)
	}
}

func TestExprReaderPure(t *testing.T) {
	// Pure should ignore the environment
	comp := efkt.ExprReturn[int](100)

	result := efkt.RunReaderExpr[int, int](42, comp)
	if result != 100 {
		t.Fatalf("got %d, want 100", result)
	}
}

func TestExprReaderWithConfig(t *testing.T) {
	comp := efkt.ExprBind(
		efkt.ExprMap(efkt.ExprPerform(efkt.Ask[Config]{}), func(c Config) bool { return c.Debug }),
		func(debug bool) efkt.Expr[string] {
			if debug {
				return efkt.ExprReturn("debug mode")
			}
			return efkt.ExprReturn("production")
		},
	)

	result := efkt.RunReaderExpr[Config, string](Config{Debug: true, Port: 80}, comp)
	if result != "debug mode" {
		t.Fatalf("got %q, want %q", result, "debug mode")
	}

	result = efkt.RunReaderExpr[Config, string](Config{Debug: false, Port: 80}, comp)
	if result != "production" {
		t.Fatalf("got %q, want %q", result, "production")
	}
}
