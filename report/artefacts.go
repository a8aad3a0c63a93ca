/*
 * Copyright (c) 2020 Siemens AG
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 * Author(s): Jonas Plum
 */

package report

import (
	"strings"

	"github.com/forensicanalysis/evidencechain"
)

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/rtf":    true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/vnd.ms-excel":                        true,
	"application/vnd.ms-powerpoint":                   true,
	"application/vnd.oasis.opendocument.text":         true,
	"application/vnd.oasis.opendocument.spreadsheet":  true,
	"application/vnd.oasis.opendocument.presentation": true,
}

// keywords are matched against operation and file name, first match wins.
var keywords = []struct {
	words []string
	count func(*ArtefactCounts)
}{
	{[]string{"whatsapp", "msgstore"}, func(c *ArtefactCounts) { c.WhatsApp++ }},
	{[]string{"google_maps", "googlemaps", "maps"}, func(c *ArtefactCounts) { c.GoogleMaps++ }},
	{[]string{"contact"}, func(c *ArtefactCounts) { c.Contacts++ }},
	{[]string{"call"}, func(c *ArtefactCounts) { c.Calls++ }},
	{[]string{"sms", "mms"}, func(c *ArtefactCounts) { c.SMS++ }},
	{[]string{"wifi", "wpa_supplicant"}, func(c *ArtefactCounts) { c.WifiNetworks++ }},
	{[]string{"browser", "browsing", "history", "chrome"}, func(c *ArtefactCounts) { c.BrowsingHistory++ }},
	{[]string{"location", "gps"}, func(c *ArtefactCounts) { c.LocationData++ }},
	{[]string{"package", "apps", "apk"}, func(c *ArtefactCounts) { c.InstalledApps++ }},
	{[]string{"image", "photo", "dcim"}, func(c *ArtefactCounts) { c.Images++ }},
	{[]string{"video"}, func(c *ArtefactCounts) { c.Videos++ }},
	{[]string{"audio", "voice", "recording"}, func(c *ArtefactCounts) { c.Audio++ }},
	{[]string{"document"}, func(c *ArtefactCounts) { c.Documents++ }},
}

// countArtefacts classifies PASS records by MIME family first and by
// operation and file name keywords second. Unclassified records are not
// counted.
func countArtefacts(records []evidencechain.EvidenceRecord) ArtefactCounts {
	counts := ArtefactCounts{}
	for _, record := range records {
		if !record.Passed() {
			continue
		}
		switch {
		case strings.HasPrefix(record.MimeType, "image/"):
			counts.Images++
			continue
		case strings.HasPrefix(record.MimeType, "video/"):
			counts.Videos++
			continue
		case strings.HasPrefix(record.MimeType, "audio/"):
			counts.Audio++
			continue
		case documentTypes[record.MimeType]:
			counts.Documents++
			continue
		}

		label := strings.ToLower(record.Operation + " " + record.Filename)
	match:
		for _, keyword := range keywords {
			for _, word := range keyword.words {
				if strings.Contains(label, word) {
					keyword.count(&counts)
					break match
				}
			}
		}
	}
	return counts
}

func evidenceChain(records []evidencechain.EvidenceRecord) EvidenceChain {
	chain := EvidenceChain{TotalFiles: len(records)}
	for _, record := range records {
		if record.Passed() {
			chain.HashesCalculated++
		} else {
			chain.FilesWithErrors++
		}
	}
	chain.IntegrityVerified = chain.FilesWithErrors == 0
	if len(records) > 0 {
		chain.LastUpdate = records[len(records)-1].Timestamp
	} else {
		chain.LastUpdate = "N/A"
	}
	return chain
}
