// Package pdf gera o comprovante de ordem de serviço entregue ao cliente
// no balcão (via para impressão em A4).
//
// Layout da página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nome da loja + CNPJ  │  OS Nº + Data               │
//	│  ───────────────────────────────────────────────────────── │
//	│  CLIENTE: Nome + CPF + contato                              │
//	│  EQUIPAMENTO: modelo + defeito relatado + diagnóstico       │
//	│  ───────────────────────────────────────────────────────── │
//	│  VALORES: Orçado / Final                                    │
//	│  ───────────────────────────────────────────────────────── │
//	│  RODAPÉ: condições + linha de assinatura                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/consertapro/conserta-api/internal/domain/entity"
)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	corPrimaria = &props.Color{Red: 16, Green: 93, Blue: 66}
	corCinza    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoOSGenerator gera o comprovante de OS usando Maroto v2.
type MarotoOSGenerator struct{}

// NewMarotoOSGenerator constrói o gerador.
func NewMarotoOSGenerator() *MarotoOSGenerator { return &MarotoOSGenerator{} }

// GeraComprovanteOS gera o PDF e devolve seus bytes.
func (g *MarotoOSGenerator) GeraComprovanteOS(
	_ context.Context,
	ordem *entity.OrdemServico,
	empresa *entity.Empresa,
	cliente *entity.Cliente,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Ordem de Serviço Nº %d", ordem.Numero), true).
		WithAuthor(empresa.Nome, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(ordem, empresa))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.5}))
	m.AddRows(clienteRow(cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.3}))
	for _, r := range equipamentoRows(ordem) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.3}))
	m.AddRows(valoresRow(ordem))
	m.AddRows(line.NewRow(3))
	for _, r := range rodapeRows() {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: nome da loja + CNPJ (esq) e número da OS + data (dir).
func headerRow(ordem *entity.OrdemServico, empresa *entity.Empresa) core.Row {
	data := ordem.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(empresa.Nome, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: corPrimaria, Top: 1,
			}),
			text.New("CNPJ: "+nonEmpty(empresa.CNPJ, "—"), props.Text{
				Size: 9, Top: 9, Color: corCinza,
			}),
		),
		col.New(5).Add(
			text.New("ORDEM DE SERVIÇO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: corPrimaria, Top: 1,
			}),
			text.New(fmt.Sprintf("Nº %d", ordem.Numero), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: corCinza,
			}),
		),
	)
}

// clienteRow: dados do cliente que deixou o equipamento.
func clienteRow(cliente *entity.Cliente) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: corPrimaria, Top: 1,
			}),
			text.New(cliente.Nome, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CPF: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(cliente.CPF, "—"),
				nonEmpty(cliente.Telefone, "—"),
				nonEmpty(cliente.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: corCinza}),
		),
	)
}

// equipamentoRows: equipamento, defeito relatado e diagnóstico técnico.
func equipamentoRows(ordem *entity.OrdemServico) []core.Row {
	bloco := func(titulo, corpo string) core.Row {
		return row.New(12).Add(col.New(12).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: corPrimaria, Top: 1,
			}),
			text.New(nonEmpty(corpo, "—"), props.Text{Size: 9, Top: 6}),
		))
	}
	return []core.Row{
		bloco("EQUIPAMENTO", ordem.Equipamento),
		bloco("DEFEITO RELATADO", ordem.Defeito),
		bloco("DIAGNÓSTICO", ordem.Diagnostico),
	}
}

// valoresRow: bloco de valores alinhado à direita.
func valoresRow(ordem *entity.OrdemServico) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: corPrimaria, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: corPrimaria, Right: 1,
		})
	}

	return row.New(18).Add(
		col.New(3),
		col.New(3).Add(
			label("Valor orçado:"),
			grandLabel("VALOR FINAL:"),
		),
		col.New(3).Add(
			value("R$ "+ordem.ValorOrcado.StringFixed(2)),
			grandValue("R$ "+ordem.ValorFinal.StringFixed(2)),
		),
		col.New(3),
	)
}

// rodapeRows: condições de retirada + linha de assinatura.
func rodapeRows() []core.Row {
	return []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New(
				"A retirada do equipamento exige a apresentação deste comprovante. "+
					"Equipamentos não retirados em até 90 dias após a conclusão poderão "+
					"ser descartados conforme o art. 1.275 do Código Civil.",
				props.Text{Size: 6.5, Color: corCinza, Top: 2},
			),
		)),
		row.New(4),
		row.New(1).Add(
			col.New(3),
			col.New(6).Add(line.New(props.Line{Color: corCinza, Thickness: 0.3})),
			col.New(3),
		),
		row.New(6).Add(col.New(12).Add(
			text.New("Assinatura do cliente", props.Text{
				Size: 8, Align: align.Center, Color: corCinza, Top: 1,
			}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
