package askalono

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	licenseMarker      = "License: "
	originalTextSuffix = " (original text)"
	recordLines        = 3
)

// Result is the normalized outcome of one crawl.
//
// RawDocument mirrors the tool's report one entry per scanned file, in
// original order, each entry holding path/license/score as sibling fields.
// FileCount always equals the number of entries in RawDocument.
type Result struct {
	FileCount   int
	Licenses    map[string]struct{}
	Errors      map[string]struct{}
	RawDocument *yaml.Node
}

// SortedLicenses returns the deduplicated license labels in sorted order.
func (r *Result) SortedLicenses() []string {
	labels := make([]string, 0, len(r.Licenses))
	for label := range r.Licenses {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// SortedErrors returns the recorded error messages in sorted order.
func (r *Result) SortedErrors() []string {
	msgs := make([]string, 0, len(r.Errors))
	for msg := range r.Errors {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return msgs
}

func emptyResult() *Result {
	return &Result{
		Licenses:    map[string]struct{}{},
		Errors:      map[string]struct{}{},
		RawDocument: &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"},
	}
}

// ParseResultsFile interprets the crawl report written to path.
//
// An absent or zero-length file is a valid "no findings" outcome and yields
// the canonical empty Result. The report repeats 3-line records
// (path, license line, score line); a trailing partial record is silently
// dropped. A line that does not fit the record shape surfaces the underlying
// yaml error, fatal for this call as a whole.
func ParseResultsFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return emptyResult(), nil
		}
		return nil, fmt.Errorf("read results file: %w", err)
	}
	if len(data) == 0 {
		return emptyResult(), nil
	}

	lines, err := splitLines(data)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	result := emptyResult()
	for i := 0; i+recordLines-1 < len(lines); i += recordLines {
		filePath := lines[i]
		licenseLine := strings.TrimSuffix(lines[i+1], originalTextSuffix)
		scoreLine := lines[i+2]

		result.Licenses[licenseLabel(licenseLine)] = struct{}{}

		record, err := parseRecord(filePath, licenseLine, scoreLine)
		if err != nil {
			return nil, err
		}
		result.RawDocument.Content = append(result.RawDocument.Content, record)
		result.FileCount++
	}

	return result, nil
}

// licenseLabel extracts the label following the "License: " marker. Lines
// without the marker pass through whole, matching the report format's
// substring contract.
func licenseLabel(licenseLine string) string {
	if _, after, found := strings.Cut(licenseLine, licenseMarker); found {
		return after
	}
	return licenseLine
}

// parseRecord rebuilds one record as a small yaml block and parses it into a
// mapping node with path/license/score as sibling fields.
func parseRecord(filePath, licenseLine, scoreLine string) (*yaml.Node, error) {
	block := fmt.Sprintf("Path: %s\n%s\n%s\n", filePath, licenseLine, scoreLine)

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, fmt.Errorf("parse record for %s: %w", filePath, err)
	}
	if len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse record for %s: unexpected document shape", filePath)
	}
	return doc.Content[0], nil
}

func splitLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
