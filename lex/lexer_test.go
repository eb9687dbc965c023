package lex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenizeOperators(t *testing.T) {
	toks, err := NewLexer("1 + 2 * 3 <= 4 != 5 ++ \"s\"").Tokenize()
	require.NoError(t, err)
	require.Equal(t, []Kind{
		IntegerLit, AddOp, IntegerLit, MulOp, IntegerLit, CompareOp, IntegerLit,
		CompareOp, IntegerLit, ConcatOp, DoubleQuotedString, EOF,
	}, kinds(toks))
}

func TestTokenizeKeywordsVsSymbols(t *testing.T) {
	toks, err := NewLexer("def end lambda if else do and or").Tokenize()
	require.NoError(t, err)
	require.Equal(t, Keyword, toks[0].Kind)
	require.Equal(t, Keyword, toks[1].Kind)
	for _, tok := range toks[2:8] {
		require.Equal(t, Symbol, tok.Kind)
	}
}

func TestTokenizeTracksLines(t *testing.T) {
	toks, err := NewLexer("a\nb\nc").Tokenize()
	require.NoError(t, err)
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[2].Line)
	require.Equal(t, 3, toks[4].Line)
}

func TestUnexpectedCharacter(t *testing.T) {
	_, err := NewLexer("1 & 2").Tokenize()
	require.Error(t, err)
	var uce *UnexpectedCharacterError
	require.ErrorAs(t, err, &uce)
	require.Equal(t, byte('&'), uce.Char)
}

func TestUnterminatedString(t *testing.T) {
	_, err := NewLexer("'unterminated").Tokenize()
	require.Error(t, err)
}
