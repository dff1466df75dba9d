package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/pipeline/mocks"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

var importActor = &domain.Actor{ID: "dir-1", Name: "Diretora", Role: domain.RoleDiretoria}

func TestParseBRL(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "R$ 1.234,56", want: 1234.56},
		{raw: "R$ 150.000,00", want: 150000},
		{raw: "1234,5", want: 1234.5},
		{raw: "98765.43", want: 98765.43},
		{raw: "1.500.000", want: 1500000},
		{raw: "250000", want: 250000},
		{raw: "a combinar", wantErr: true},
		{raw: "-10,00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseBRL(tt.raw)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestToCreateLeadRequest(t *testing.T) {
	header := []string{colRazaoSocial, colNomeFantasia, colValorPotencia, colObservacao, colTelefone1, colTelefone2, colTelefone3}
	columns := headerIndex(header)

	t.Run("linha completa", func(t *testing.T) {
		req, err := toCreateLeadRequest(sheetRow{columns: columns, values: []string{
			" Metalúrgica Horizonte Ltda ", "Horizonte", "R$ 150.000,00", "Cliente antigo", "(11) 3333-4444", "11 98888-7777", "11 2222-1111",
		}})

		require.NoError(t, err)
		assert.Equal(t, "Metalúrgica Horizonte Ltda", req.RazaoSocial)
		require.NotNil(t, req.NomeFantasia)
		assert.Equal(t, "Horizonte", *req.NomeFantasia)
		require.NotNil(t, req.ValorEstimadoRecuperacao)
		assert.Equal(t, 150000.0, *req.ValorEstimadoRecuperacao)
		require.NotNil(t, req.TelefonePrincipal)
		assert.Equal(t, "(11) 3333-4444", *req.TelefonePrincipal)
		require.NotNil(t, req.Observacoes)
		assert.Equal(t, "Cliente antigo\nTelefone Comercial 3: 11 2222-1111", *req.Observacoes)
	})

	t.Run("sem razão social e linha curta", func(t *testing.T) {
		req, err := toCreateLeadRequest(sheetRow{columns: columns, values: []string{"", "Fantasia"}})

		require.NoError(t, err)
		assert.Equal(t, unnamedCompany, req.RazaoSocial)
		assert.Nil(t, req.ValorEstimadoRecuperacao)
		assert.Nil(t, req.TelefonePrincipal)
		assert.Nil(t, req.Observacoes)
	})

	t.Run("valor inválido", func(t *testing.T) {
		_, err := toCreateLeadRequest(sheetRow{columns: columns, values: []string{"Empresa", "", "a combinar"}})
		assert.Error(t, err)
	})
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(sheet)
	require.NoError(t, err)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "clientes.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportWorkbook(t *testing.T) {
	path := writeWorkbook(t, defaultSheet, [][]any{
		{colRazaoSocial, colInstituicao, colValorPotencia, colTelefone1},
		{"Metalúrgica Horizonte Ltda", "Banco do Brasil", 150000.5, "11 3333-4444"},
		{"", "", "", ""},
		{"Transportes Serra Azul", "Itaú", "valor?", ""},
		{"Padaria Central", "Caixa", "R$ 12.000,00", ""},
		{"Construtora Vale", "Bradesco", 80000, ""},
	})

	rows, err := readRows(path, defaultSheet)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	creator := mocks.NewMockLeadManager(ctrl)

	var created []domain.CreateLeadRequest
	creator.EXPECT().
		CreateLead(gomock.Any(), importActor, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Actor, req domain.CreateLeadRequest) (*domain.Lead, error) {
			created = append(created, req)
			if req.RazaoSocial == "Construtora Vale" {
				return nil, errors.New("connection reset")
			}
			return &domain.Lead{ID: "lead", RazaoSocial: req.RazaoSocial}, nil
		}).
		Times(3)

	result, err := importRows(context.Background(), creator, importActor, rows)

	require.NoError(t, err)
	assert.Equal(t, importResult{Imported: 2, Skipped: 1, Failed: 2}, result)

	require.Len(t, created, 3)
	assert.Equal(t, "Metalúrgica Horizonte Ltda", created[0].RazaoSocial)
	require.NotNil(t, created[0].ValorEstimadoRecuperacao)
	assert.InDelta(t, 150000.5, *created[0].ValorEstimadoRecuperacao, 0.001)
	require.NotNil(t, created[0].InstituicoesFinanceiras)
	assert.Equal(t, "Banco do Brasil", *created[0].InstituicoesFinanceiras)
	require.NotNil(t, created[1].ValorEstimadoRecuperacao)
	assert.Equal(t, 12000.0, *created[1].ValorEstimadoRecuperacao)
}

func TestImportRowsRequiresHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	creator := mocks.NewMockLeadManager(ctrl)

	_, err := importRows(context.Background(), creator, importActor, nil)
	assert.Error(t, err)

	_, err = importRows(context.Background(), creator, importActor, [][]string{{"Nome", "Telefone"}})
	assert.Error(t, err)
}

func TestReadRowsMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Outra", [][]any{{colRazaoSocial}})

	_, err := readRows(path, defaultSheet)
	assert.Error(t, err)
}
