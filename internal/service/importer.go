package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"stakebook/internal/config"
	"stakebook/internal/models"
)

var ErrTooManyRows = errors.New("import exceeds row limit")

// CSVImporter ingests the native export format: a fixed header, one session
// per row, money in minor currency units, timestamps in RFC 3339. Column
// mapping for third-party exports lives outside this service. Imported rows
// go through the same write path as manual entries, so profit settlement
// applies identically.
type CSVImporter struct {
	Sessions *SessionService
	Config   config.ImporterConfig
}

var csvHeader = []string{
	"date", "start", "end", "game_type", "location", "stakes",
	"buy_in", "cash_out", "expenses", "rebuys", "bounties", "notes",
}

func (im *CSVImporter) ImportSessions(ctx context.Context, bankrollID uint64, r io.Reader) (int, error) {
	if im == nil || im.Sessions == nil {
		return 0, nil
	}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return 0, err
	}

	maxRows := im.Config.MaxRows
	if maxRows <= 0 {
		maxRows = 5000
	}

	imported := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+1, err)
		}
		if imported >= maxRows {
			return imported, ErrTooManyRows
		}
		item, err := rowToSession(row, bankrollID)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+1, err)
		}
		if err := im.Sessions.Create(ctx, item); err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+1, err)
		}
		imported++
	}
	return imported, nil
}

func checkHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, want := range csvHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("column %d: expected %q, got %q", i, want, header[i])
		}
	}
	return nil
}

func rowToSession(row []string, bankrollID uint64) (*models.Session, error) {
	if len(row) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(csvHeader), len(row))
	}
	date, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(row[1]))
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(row[2]))
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	item := &models.Session{
		BankrollID: bankrollID,
		GameType:   strings.TrimSpace(strings.ToLower(row[3])),
		Location:   strings.TrimSpace(row[4]),
		Stakes:     strings.TrimSpace(row[5]),
		Date:       date,
		StartAt:    start,
		EndAt:      end,
		Notes:      strings.TrimSpace(row[11]),
	}

	if item.BuyIn, err = parseAmount(row[6], "buy_in"); err != nil {
		return nil, err
	}
	if item.CashOut, err = parseAmount(row[7], "cash_out"); err != nil {
		return nil, err
	}
	if item.Expenses, err = parseAmount(row[8], "expenses"); err != nil {
		return nil, err
	}

	if item.GameType == models.GameTournament {
		rebuys, err := parseCount(row[9], "rebuys")
		if err != nil {
			return nil, err
		}
		item.RebuyCount = &rebuys
		bounties, err := parseAmount(row[10], "bounties")
		if err != nil {
			return nil, err
		}
		item.Bounties = &bounties
	}

	return item, nil
}

func parseAmount(v, field string) (int64, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return n, nil
}

func parseCount(v, field string) (int, error) {
	n, err := parseAmount(v, field)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, nil
	}
	return int(n), nil
}
