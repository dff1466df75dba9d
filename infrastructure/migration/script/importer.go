package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet     = "Base_Clientes_CRM"
	unnamedCompany   = "Sem nome"
	progressInterval = 50
)

// Cabeçalhos da planilha de clientes
const (
	colRazaoSocial   = "Razão Social"
	colNomeFantasia  = "Nome Fantasia"
	colEndereco      = "Endereço Completo"
	colInstituicao   = "Instituição Financeira"
	colContrato      = "Número do Contrato"
	colValorPotencia = "Valor Potencial de Restituição"
	colObservacao    = "Observação Geral"
	colTelefone1     = "Telefone Comercial 1"
	colTelefone2     = "Telefone Comercial 2"
	colTelefone3     = "Telefone Comercial 3"
)

// LeadCreator é satisfeito pelo caso de uso do funil
type LeadCreator interface {
	CreateLead(ctx context.Context, actor *domain.Actor, req domain.CreateLeadRequest) (*domain.Lead, error)
}

type importResult struct {
	Imported int
	Skipped  int
	Failed   int
}

// readRows lê a aba como linhas de texto; números vêm sem a formatação da célula
func readRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir planilha %s", path)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler aba %s", sheet)
	}

	return rows, nil
}

// sheetRow dá acesso às colunas de uma linha pelo nome do cabeçalho
type sheetRow struct {
	columns map[string]int
	values  []string
}

func (r sheetRow) get(column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[idx])
}

func (r sheetRow) optional(column string) *string {
	value := r.get(column)
	if value == "" {
		return nil
	}
	return &value
}

func (r sheetRow) empty() bool {
	for _, value := range r.values {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return columns
}

// toCreateLeadRequest monta o cadastro a partir da linha; o terceiro telefone vai para as observações
func toCreateLeadRequest(row sheetRow) (domain.CreateLeadRequest, error) {
	req := domain.CreateLeadRequest{
		RazaoSocial:             row.get(colRazaoSocial),
		NomeFantasia:            row.optional(colNomeFantasia),
		Endereco:                row.optional(colEndereco),
		InstituicoesFinanceiras: row.optional(colInstituicao),
		ContratosBancarios:      row.optional(colContrato),
		Observacoes:             row.optional(colObservacao),
		TelefonePrincipal:       row.optional(colTelefone1),
		TelefoneSecundario:      row.optional(colTelefone2),
	}

	if req.RazaoSocial == "" {
		req.RazaoSocial = unnamedCompany
	}

	if telefone := row.get(colTelefone3); telefone != "" {
		note := fmt.Sprintf("%s: %s", colTelefone3, telefone)
		if req.Observacoes != nil {
			note = *req.Observacoes + "\n" + note
		}
		req.Observacoes = &note
	}

	if raw := row.get(colValorPotencia); raw != "" {
		value, err := parseBRL(raw)
		if err != nil {
			return req, err
		}
		req.ValorEstimadoRecuperacao = &value
	}

	return req, nil
}

// parseBRL aceita "R$ 1.234,56", "1234,56" e o valor bruto da célula ("1234.56")
func parseBRL(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "R$")
	value = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, value)

	if strings.Contains(value, ",") {
		value = strings.ReplaceAll(value, ".", "")
		value = strings.Replace(value, ",", ".", 1)
	} else if strings.Count(value, ".") > 1 {
		value = strings.ReplaceAll(value, ".", "")
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Errorf("valor monetário inválido: %q", raw)
	}
	if parsed < 0 {
		return 0, errors.Errorf("valor monetário negativo: %q", raw)
	}

	return parsed, nil
}

// importRows cadastra cada linha pelo caso de uso; falhas de uma linha não interrompem a importação
func importRows(ctx context.Context, creator LeadCreator, actor *domain.Actor, rows [][]string) (importResult, error) {
	var result importResult

	if len(rows) == 0 {
		return result, errors.New("planilha sem cabeçalho")
	}

	columns := headerIndex(rows[0])
	if _, ok := columns[colRazaoSocial]; !ok {
		return result, errors.Errorf("coluna obrigatória ausente: %s", colRazaoSocial)
	}

	total := len(rows) - 1
	for i, values := range rows[1:] {
		line := i + 2
		row := sheetRow{columns: columns, values: values}

		if row.empty() {
			result.Skipped++
			continue
		}

		logger := log.L.WithFields(log.Fields{"line": line, "razao_social": row.get(colRazaoSocial)})

		req, err := toCreateLeadRequest(row)
		if err != nil {
			logger.WithError(err).Warn("Linha ignorada")
			result.Failed++
			continue
		}

		lead, err := creator.CreateLead(ctx, actor, req)
		if err != nil {
			logger.WithError(err).Error("Erro ao importar cliente")
			result.Failed++
			continue
		}

		result.Imported++
		logger.WithField("lead_id", lead.ID).Debug("Lead criado")

		if result.Imported%progressInterval == 0 {
			log.L.Infof("Progresso: %d/%d linhas processadas", line-1, total)
		}
	}

	return result, nil
}
