package script

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParsePrompts reads a prompt list, one "{num}. {text}" line per item.
// Lines not starting with a digit or lacking a '.' separator are ignored.
// List order follows file order.
func ParsePrompts(data []byte) []Item {
	var items []Item
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		numField, text, found := strings.Cut(line, ".")
		if !found {
			continue
		}
		num, err := strconv.Atoi(numField)
		if err != nil || num <= 0 {
			continue
		}
		items = append(items, Item{
			Num:    num,
			Text:   strings.TrimSpace(text),
			Status: StatusNotStarted,
		})
	}
	return items
}

// RenderPrompts is the inverse of ParsePrompts, regenerating the prompt
// list from the in-memory items in list order.
func RenderPrompts(items []Item) []byte {
	var builder strings.Builder
	for _, item := range items {
		fmt.Fprintf(&builder, "%d. %s\n", item.Num, item.Text)
	}
	return []byte(builder.String())
}

// MergePrompts appends prompts from an additional list whose text does not
// already appear in items. New items are numbered from max(num)+1 onward
// in the order they appear in data. It returns the extended list and the
// number of items added.
func MergePrompts(items []Item, data []byte) ([]Item, int) {
	existing := make(map[string]struct{}, len(items))
	for _, item := range items {
		existing[textIdentity(item.Text)] = struct{}{}
	}

	maxNum := 0
	for _, item := range items {
		if item.Num > maxNum {
			maxNum = item.Num
		}
	}

	added := 0
	for _, candidate := range ParsePrompts(data) {
		identity := textIdentity(candidate.Text)
		if _, ok := existing[identity]; ok {
			continue
		}
		existing[identity] = struct{}{}
		maxNum++
		items = append(items, Item{
			Num:    maxNum,
			Text:   candidate.Text,
			Status: StatusNotStarted,
		})
		added++
	}
	return items, added
}

// textIdentity is the comparison key for prompt dedup: NFC-normalized,
// whitespace-trimmed text. Visually identical prompts that differ only in
// Unicode composition count as the same prompt.
func textIdentity(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
