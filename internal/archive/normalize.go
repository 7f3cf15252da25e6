// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"fmt"
	"regexp"
	"unicode"
)

// packagedPrefix matches the positional tag the packaging stage prepends to
// every entity it writes into the transfer store: an "L" followed by the
// layer's index digit.
var packagedPrefix = regexp.MustCompile(`^L[0-9]`)

// NormalizeIdentifiers repairs the entity names inside the extracted store.
// Every entity carrying a packaging tag has the two-character tag stripped,
// then any remaining leading non-letter runes dropped so the result is a
// valid identifier again. An entity whose name degenerates to nothing
// usable is given a synthesized placeholder name keyed by its position in
// the store listing.
//
// Entities without the tag are left untouched, which also makes the repair
// idempotent: a second pass over a repaired store changes nothing. A
// failed rename aborts the repair, since a half-renamed store is not safe
// to continue with.
func (p *Pipeline) NormalizeIdentifiers(store string) ([]Rename, error) {
	entities, err := p.Engine.ListEntities(store)
	if err != nil {
		return nil, fmt.Errorf("list entities in %s: %w", store, err)
	}

	var renames []Rename
	for i, entity := range entities {
		if !packagedPrefix.MatchString(entity) {
			continue
		}
		repaired := repairName(entity[2:], i)
		if repaired == entity {
			continue
		}
		if err := p.Engine.RenameEntity(store, entity, repaired); err != nil {
			return renames, fmt.Errorf("rename %s to %s: %w", entity, repaired, err)
		}
		p.Logger.Info("repaired entity name", "from", entity, "to", repaired)
		renames = append(renames, Rename{From: entity, To: repaired})
	}
	return renames, nil
}

// repairName strips leading characters from the tag-stripped name until the
// remainder is purely alphabetic, so a name like "Ro@#ads" repairs to "ads".
// The left-to-right strip deliberately consumes letters that precede an
// embedded special character; it mirrors the established repair convention
// and must not be narrowed to skipping digits only. A name that degenerates
// to a single non-letter (or to nothing) gets a synthesized placeholder
// keyed by its position in the store listing.
func repairName(name string, position int) string {
	runes := []rune(name)
	for !allLetters(runes) {
		if len(runes) <= 1 {
			return fmt.Sprintf("No_Alpha_Characters_Layer_%d", position)
		}
		runes = runes[1:]
	}
	return string(runes)
}

func allLetters(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
