package phplex

import "testing"

func collect(src string) []Token {
	l := New(0, []byte(src))
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexInlineHTMLBeforeOpenTag(t *testing.T) {
	toks := collect("hello <?php echo 1;")
	if toks[0].Kind != INLINE_HTML || toks[0].Text != "hello " {
		t.Fatalf("expected inline html, got %+v", toks[0])
	}
	if toks[1].Kind != OPEN_TAG {
		t.Fatalf("expected open tag, got %+v", toks[1])
	}
}

func TestLexVariableAndAssign(t *testing.T) {
	toks := collect("<?php $a = 1;")
	got := kinds(toks)
	want := []Kind{OPEN_TAG, VARIABLE, ASSIGN, INT_LIT, SEMI, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
	if toks[1].Text != "a" {
		t.Errorf("variable text = %q, want %q", toks[1].Text, "a")
	}
}

func TestLexKeywordsCaseInsensitive(t *testing.T) {
	toks := collect("<?php IF (true) {}")
	if toks[1].Kind != KW_IF {
		t.Errorf("expected KW_IF, got %v", toks[1].Kind)
	}
}

func TestLexThreeCharOperators(t *testing.T) {
	toks := collect("<?php $a === $b; $c ??= 1; $d?->e;")
	found := map[Kind]bool{}
	for _, tok := range toks {
		found[tok.Kind] = true
	}
	for _, k := range []Kind{IDENTICAL, COALESCE_ASSIGN, NULLSAFE_ARROW} {
		if !found[k] {
			t.Errorf("expected to find token kind %v", k)
		}
	}
}

func TestLexCloseTagReturnsToInlineHTML(t *testing.T) {
	toks := collect("<?php echo 1; ?>done")
	var sawInline bool
	for _, tok := range toks {
		if tok.Kind == INLINE_HTML && tok.Text == "done" {
			sawInline = true
		}
	}
	if !sawInline {
		t.Errorf("expected trailing inline html %q, got %+v", "done", toks)
	}
}

func TestLexStringWithEscape(t *testing.T) {
	toks := collect(`<?php $a = "hi \"there\"";`)
	if toks[3].Kind != STRING_LIT {
		t.Fatalf("expected STRING_LIT, got %v (%q)", toks[3].Kind, toks[3].Text)
	}
}

func TestLexFloatLiteral(t *testing.T) {
	toks := collect("<?php $a = 1.5e3;")
	if toks[3].Kind != FLOAT_LIT {
		t.Fatalf("expected FLOAT_LIT, got %v", toks[3].Kind)
	}
}
