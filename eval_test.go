package texcalc_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/texcalc"
)

func TestEval(t *testing.T) {
	type vc struct {
		args []float64
		r    float64
	}
	cases := []struct {
		name   string
		src    string
		params []string
		r      []vc
	}{
		{"num", "1", nil, []vc{{nil, 1}}},
		{"decimal", "2.75", nil, []vc{{nil, 2.75}}},
		{"ident", "x", []string{"x"}, []vc{
			{[]float64{4}, 4},
			{[]float64{5}, 5},
			{[]float64{-6}, -6},
		}},
		{"neg", "-x", []string{"x"}, []vc{
			{[]float64{4}, -4},
			{[]float64{-5}, 5},
		}},
		{"add", "4+5+6", nil, []vc{{nil, 4 + 5 + 6}}},
		{"sub", "4-5-6", nil, []vc{{nil, 4 - 5 - 6}}},
		{"subchain", "1-2-3", nil, []vc{{nil, -4}}},
		{"subadd", "a-b+c", []string{"a", "b", "c"}, []vc{{[]float64{10, 4, 1}, 7}}},
		{"mul", `4\cdot 5\cdot 6`, nil, []vc{{nil, 4 * 5 * 6}}},
		{"frac", `\frac{4}{5}`, nil, []vc{{nil, 4.0 / 5.0}}},
		{"pow", "4^3^2", nil, []vc{{nil, 4096}}},
		{"powgroup", "4^{3^2}", nil, []vc{{nil, 262144}}},
		{"negpow", "-x^2", []string{"x"}, []vc{{[]float64{3}, -9}}},
		{"termpow", "2x^2", []string{"x"}, []vc{{[]float64{3}, 18}}},
		{"paren", `\left(2\cdot x-3\right)`, []string{"x"}, []vc{{[]float64{5}, 7}}},
		{"parenpow", `\left(x+1\right)^2`, []string{"x"}, []vc{{[]float64{2}, 9}}},
		{"alias", "x+x", []string{"x"}, []vc{{[]float64{3}, 6}}},
		{"sqrt", `\sqrt{16}`, nil, []vc{{nil, 4}}},
		{"abs", `\left|x-5\right|`, []string{"x"}, []vc{
			{[]float64{2}, 3},
			{[]float64{7}, 2},
		}},
		{"pi", `\pi r^2`, []string{"r"}, []vc{{[]float64{2}, 4 * math.Pi}}},
		{"mulneg", `2\cdot-3`, nil, []vc{{nil, -6}}},
		{"assign", "y=mx+b", []string{"b", "m", "x"}, []vc{{[]float64{1, 2, 3}, 7}}},
		{"sorted", "B+a", []string{"B", "a"}, []vc{{[]float64{1, 10}, 11}}},
		{"order", `\frac{z}{a}`, []string{"a", "z"}, []vc{{[]float64{4, 2}, 0.5}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := texcalc.Compile(c.src)
			require.NoError(t, err, "compiling %q", c.src)
			assert.Equal(t, c.params, f.Params())
			for _, v := range c.r {
				r, err := f.Call(v.args...)
				require.NoError(t, err)
				assert.InDelta(t, v.r, r, 1e-12, "%q with %v", c.src, v.args)
			}
		})
	}
}

func TestEvalQuadratic(t *testing.T) {
	f, err := texcalc.Compile(`\frac{-b+\sqrt{b^2-4\cdot a\cdot c}}{2\cdot a}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, f.Params())
	r, err := f.Call(2, -9, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.137, r, 1e-3)
	assert.InDelta(t, (9+math.Sqrt(57))/4, r, 1e-12)
}

func TestEvalAddition(t *testing.T) {
	f, err := texcalc.Compile("a+b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, f.Params())
	vals := []float64{0, 1, -1, 0.1, 1e300, -1e-300, math.MaxFloat64, math.SmallestNonzeroFloat64, 12345.678}
	for _, x := range vals {
		for _, y := range vals {
			r, err := f.Call(x, y)
			require.NoError(t, err)
			assert.Equal(t, x+y, r, "%g + %g", x, y)
		}
	}
}

func TestEvalImpliedMultiplication(t *testing.T) {
	implied, err := texcalc.Compile("2x")
	require.NoError(t, err)
	explicit, err := texcalc.Compile(`2\cdot x`)
	require.NoError(t, err)
	for _, x := range []float64{0, 1, -3.5, 1e10, math.Inf(1), math.Inf(-1)} {
		a, err := implied.Call(x)
		require.NoError(t, err)
		b, err := explicit.Call(x)
		require.NoError(t, err)
		assert.Equal(t, b, a, "x = %g", x)
	}
	a, _ := implied.Call(math.NaN())
	b, _ := explicit.Call(math.NaN())
	assert.True(t, math.IsNaN(a) && math.IsNaN(b))
}

func TestEvalIEEE(t *testing.T) {
	cases := []struct {
		name string
		src  string
		args []float64
		want func(float64) bool
	}{
		{"divzero", `\frac{1}{0}`, nil, func(r float64) bool { return math.IsInf(r, 1) }},
		{"negdivzero", `\frac{-1}{x}`, []float64{0}, func(r float64) bool { return math.IsInf(r, -1) }},
		{"zerozero", `\frac{0}{0}`, nil, math.IsNaN},
		{"sqrtneg", `\sqrt{-1}`, nil, math.IsNaN},
		{"negpowfrac", "x^{0.5}", []float64{-4}, math.IsNaN},
		{"negpowint", "x^3", []float64{-2}, func(r float64) bool { return r == -8 }},
		{"overflow", "x^2", []float64{1e200}, func(r float64) bool { return math.IsInf(r, 1) }},
		{"huge", "1" + strings.Repeat("0", 400), nil, func(r float64) bool { return math.IsInf(r, 1) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := texcalc.Compile(c.src)
			require.NoError(t, err)
			r, err := f.Call(c.args...)
			require.NoError(t, err, "numeric edge cases must not be errors")
			assert.True(t, c.want(r), "%q gave %g", c.src, r)
		})
	}
}

func TestEvalArity(t *testing.T) {
	f, err := texcalc.Compile("a+b")
	require.NoError(t, err)
	for _, args := range [][]float64{nil, {1}, {1, 2, 3}} {
		_, err := f.Call(args...)
		var ae *texcalc.ArityError
		if assert.True(t, errors.As(err, &ae), "%v: got %v", args, err) {
			assert.Equal(t, 2, ae.Want)
			assert.Equal(t, len(args), ae.Got)
		}
		assert.Panics(t, func() { f.Eval(args) })
	}
	assert.Equal(t, 3.0, f.Eval([]float64{1, 2}))
}

func TestEvalDeepStack(t *testing.T) {
	// Sums nest to the right, so each term holds one more stack slot.
	src := "x"
	for i := 0; i < 100; i++ {
		src += "+x"
	}
	f, err := texcalc.Compile(src)
	require.NoError(t, err)
	r, err := f.Call(2)
	require.NoError(t, err)
	assert.Equal(t, 202.0, r)
}

func TestParamsCopy(t *testing.T) {
	f, err := texcalc.Compile("a+b")
	require.NoError(t, err)
	p := f.Params()
	p[0] = "z"
	assert.Equal(t, []string{"a", "b"}, f.Params())
}

func TestName(t *testing.T) {
	f, err := texcalc.Compile("y = 2x")
	require.NoError(t, err)
	assert.Equal(t, "y", f.Name())
	assert.Equal(t, []string{"x"}, f.Params())
	g, err := texcalc.Compile("2x")
	require.NoError(t, err)
	assert.Equal(t, "", g.Name())
}

func TestConcurrentCalls(t *testing.T) {
	f := texcalc.MustCompile(`\frac{x^2+y}{\sqrt{x}+1}`)
	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				x, y := float64(i+g), float64(g)
				want := (x*x + y) / (math.Sqrt(x) + 1)
				if r := f.Eval([]float64{x, y}); r != want {
					errs <- "mismatch"
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestConcurrentCompile(t *testing.T) {
	srcs := []string{"a+b", `\frac{1}{x}`, "2xy", `\sqrt{z}`}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			_, err := texcalc.Compile(src)
			assert.NoError(t, err)
		}(srcs[i%len(srcs)])
	}
	wg.Wait()
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { texcalc.MustCompile(`\left(x`) })
	assert.NotPanics(t, func() { texcalc.MustCompile(`\left(x\right)`) })
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		src  string
		text string
	}{
		{"x + $", "$"},
		{`\left(x+1`, `\left(`},
		{`\frac{1}x`, `\frac`},
		{"x=y=2", "=2"},
		{`2\cdot\sin{x}`, `\sin`},
	}
	for _, c := range cases {
		_, err := texcalc.Compile(c.src)
		var ie texcalc.InputError
		if !assert.True(t, errors.As(err, &ie), "%q: got %v", c.src, err) {
			continue
		}
		assert.Equal(t, c.text, c.src[ie.Pos():ie.Pos()+ie.Width()], "%q: %v", c.src, err)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := texcalc.Compile("a+b", texcalc.Logger(log))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"compiled"`)
	assert.Contains(t, buf.String(), `"params":["a","b"]`)

	buf.Reset()
	_, err = texcalc.Compile("a+$", texcalc.Logger(log))
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"message":"lex failed"`)

	buf.Reset()
	_, err = texcalc.Compile("a+b", texcalc.Logger(log.Level(zerolog.InfoLevel)))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func BenchmarkCompile(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		texcalc.Compile(`\frac{-b+\sqrt{b^2-4\cdot a\cdot c}}{2\cdot a}`)
	}
}

func BenchmarkEval(b *testing.B) {
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		f := texcalc.MustCompile("2+3+4")
		for i := 0; i < b.N; i++ {
			f.Eval(nil)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		f := texcalc.MustCompile("x+y+z")
		args := []float64{1, 2, 3}
		for i := 0; i < b.N; i++ {
			f.Eval(args)
		}
	})
	b.Run("quadratic", func(b *testing.B) {
		b.ReportAllocs()
		f := texcalc.MustCompile(`\frac{-b+\sqrt{b^2-4\cdot a\cdot c}}{2\cdot a}`)
		args := []float64{2, -9, 3}
		for i := 0; i < b.N; i++ {
			f.Eval(args)
		}
	})
}
