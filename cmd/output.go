package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/freegames-hub/freegames/pkg/offers"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTxt   = "txt"
)

// printOffers writes offers in the requested format. fields and delimiter
// only apply to txt output.
func printOffers(w io.Writer, list []offers.Offer, format, fields, delimiter string) error {
	switch strings.ToLower(format) {
	case "", formatTable:
		return printTable(w, list)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(list))
	case formatYAML:
		return printYAML(w, list)
	case formatTxt:
		for _, o := range list {
			line, err := createLine(o, fields, delimiter)
			if err != nil {
				return err
			}
			if line != "" {
				fmt.Fprintln(w, line)
			}
		}
		return nil
	default:
		return errors.Newf("unknown output format %q (available: table, json, yaml, txt)", format)
	}
}

func printTable(w io.Writer, list []offers.Offer) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"State", "Source", "Title", "Price", "Ends", "Remaining", "URL"})
	for _, o := range list {
		t.AppendRow(table.Row{
			o.Classification,
			o.Source,
			o.Title,
			formatPrice(o.Price),
			formatEnd(o),
			formatRemaining(o.RemainingDuration),
			o.ExternalURL,
		})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d offers", len(list))})
	t.Render()
	return nil
}

// printYAML goes through JSON first so the keys match the API output.
func printYAML(w io.Writer, list []offers.Offer) error {
	raw, err := json.Marshal(nonNil(list))
	if err != nil {
		return err
	}
	var doc []interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// createLine builds one txt line from the field letters:
// t title, s state, o source, u url, p price, e end, i id.
func createLine(o offers.Offer, fields, delimiter string) (string, error) {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f {
		case 't':
			parts = append(parts, o.Title)
		case 's':
			parts = append(parts, string(o.Classification))
		case 'o':
			parts = append(parts, string(o.Source))
		case 'u':
			parts = append(parts, o.ExternalURL)
		case 'p':
			parts = append(parts, formatPrice(o.Price))
		case 'e':
			parts = append(parts, formatEnd(o))
		case 'i':
			parts = append(parts, o.ID)
		default:
			return "", errors.Newf("invalid print field %q", f)
		}
	}
	return strings.Join(parts, delimiter), nil
}

func formatPrice(p *offers.Price) string {
	if p == nil {
		return "-"
	}
	amount := strconv.FormatFloat(p.Effective(), 'f', 2, 64)
	if p.Currency == "" {
		return amount
	}
	return amount + " " + p.Currency
}

// formatEnd shows the soonest end among the full-discount windows.
func formatEnd(o offers.Offer) string {
	var end time.Time
	for _, w := range o.PromotionWindows {
		if !w.IsFree() {
			continue
		}
		if end.IsZero() || w.EndTime.Before(end) {
			end = w.EndTime
		}
	}
	if end.IsZero() {
		return "-"
	}
	return end.UTC().Format("2006-01-02 15:04")
}

func formatRemaining(r *offers.Remaining) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%dd %dh", r.Days, r.Hours)
}

func nonNil(list []offers.Offer) []offers.Offer {
	if list == nil {
		return []offers.Offer{}
	}
	return list
}
