package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransicaoValida(t *testing.T) {
	// Fluxo normal da OS, ponta a ponta.
	assert.True(t, TransicaoValida(OrdemAberta, OrdemEmAnalise))
	assert.True(t, TransicaoValida(OrdemEmAnalise, OrdemAprovada))
	assert.True(t, TransicaoValida(OrdemAprovada, OrdemEmReparo))
	assert.True(t, TransicaoValida(OrdemEmReparo, OrdemConcluida))
	assert.True(t, TransicaoValida(OrdemConcluida, OrdemEntregue))

	// Pular etapa não vale.
	assert.False(t, TransicaoValida(OrdemAberta, OrdemEmReparo))
	assert.False(t, TransicaoValida(OrdemEmAnalise, OrdemConcluida))
	assert.False(t, TransicaoValida(OrdemAberta, OrdemAberta))

	// Cancelar vale de qualquer status não terminal.
	assert.True(t, TransicaoValida(OrdemAberta, OrdemCancelada))
	assert.True(t, TransicaoValida(OrdemEmReparo, OrdemCancelada))
	assert.False(t, TransicaoValida(OrdemEntregue, OrdemCancelada))
	assert.False(t, TransicaoValida(OrdemCancelada, OrdemCancelada))

	// Terminais não voltam.
	assert.False(t, TransicaoValida(OrdemEntregue, OrdemAberta))
	assert.False(t, TransicaoValida(OrdemCancelada, OrdemEmAnalise))
}
