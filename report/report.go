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

// Package report assembles forensic reports from case metadata, extraction
// metadata and the evidence ledger. Reports are written as JSON and as a
// self-contained HTML document to the forensic_reports folder of the
// collection root.
package report

import (
	"github.com/imdario/mergo"
)

// Fixed report texts.
const (
	ReportType       = "Digital Investigation Report"
	Investigator     = "Android Collector Forensic Tool"
	Version          = "1.0"
	Method           = "Logical Acquisition via ADB"
	Tool             = "Android Collector Platform"
	DefaultOperator  = "System Operator"
	HashVerification = "SHA256 implemented"
	Disclaimer       = "This report was generated automatically. " +
		"For a complete analysis, consult a digital forensics expert."
)

// Recommendations are part of every report.
var Recommendations = []string{
	"Keep the hash files for future verification",
	"Archive the evidence on a secure medium",
	"Document any later handling of the evidence",
}

// CaseMetadata describes the investigation, it is supplied by the operator.
type CaseMetadata struct {
	CaseName     string `json:"case_name" form:"case_name"`
	CaseNumber   string `json:"case_number" form:"case_number"`
	IncidentDate string `json:"incident_date" form:"incident_date"`
	Location     string `json:"location" form:"location"`
	Description  string `json:"description" form:"description"`
}

// DefaultCase returns the values used for missing case fields.
func DefaultCase() CaseMetadata {
	return CaseMetadata{
		CaseName:     "Investigation Android",
		CaseNumber:   "CS-2024-001",
		IncidentDate: "N/A",
		Location:     "N/A",
		Description:  "Forensic analysis of an Android device",
	}
}

// DeviceInfo is the device metadata reported by the acquisition layer.
type DeviceInfo struct {
	DeviceModel    string `json:"device_model"`
	AndroidVersion string `json:"android_version"`
	Manufacturer   string `json:"manufacturer"`
	Serial         string `json:"serial"`
	IMEI           string `json:"imei"`
	Storage        string `json:"storage"`
}

// ExtractionData is the metadata of the latest extraction session.
type ExtractionData struct {
	DeviceInfo          DeviceInfo `json:"device_info"`
	HasContacts         bool       `json:"has_contacts"`
	HasCalls            bool       `json:"has_calls"`
	HasSMS              bool       `json:"has_sms"`
	HasWhatsApp         bool       `json:"has_whatsapp"`
	HasGoogleMaps       bool       `json:"has_google_maps"`
	HasImages           bool       `json:"has_images"`
	HasLocation         bool       `json:"has_location"`
	SignificantFindings string     `json:"significant_findings"`
	MainFindings        string     `json:"main_findings"`
	FirstActivity       string     `json:"first_activity"`
	LastActivity        string     `json:"last_activity"`
	KeyEvents           []string   `json:"key_events"`
}

// DeviceInformation is the device section of a report.
type DeviceInformation struct {
	DeviceModel     string `json:"device_model"`
	AndroidVersion  string `json:"android_version"`
	Manufacturer    string `json:"manufacturer"`
	SerialNumber    string `json:"serial_number"`
	IMEI            string `json:"imei"`
	StorageCapacity string `json:"storage_capacity"`
}

// AcquisitionDetails describes how the evidence was acquired.
type AcquisitionDetails struct {
	Method           string `json:"method"`
	Tool             string `json:"tool"`
	DateTime         string `json:"date_time"`
	Operator         string `json:"operator"`
	HashVerification string `json:"hash_verification"`
}

// ArtefactCounts counts ledger records per artefact category.
type ArtefactCounts struct {
	Contacts        int `json:"contacts"`
	Calls           int `json:"calls"`
	SMS             int `json:"sms"`
	WhatsApp        int `json:"whatsapp"`
	Images          int `json:"images"`
	Videos          int `json:"videos"`
	Audio           int `json:"audio"`
	Documents       int `json:"documents"`
	BrowsingHistory int `json:"browsing_history"`
	LocationData    int `json:"location_data"`
	GoogleMaps      int `json:"google_maps"`
	WifiNetworks    int `json:"wifi_networks"`
	InstalledApps   int `json:"installed_apps"`
}

// Total sums all categories.
func (c ArtefactCounts) Total() int {
	return c.Contacts + c.Calls + c.SMS + c.WhatsApp + c.Images + c.Videos + c.Audio +
		c.Documents + c.BrowsingHistory + c.LocationData + c.GoogleMaps + c.WifiNetworks + c.InstalledApps
}

// EvidenceChain summarizes the ledger.
type EvidenceChain struct {
	TotalFiles        int    `json:"total_files"`
	HashesCalculated  int    `json:"hashes_calculated"`
	IntegrityVerified bool   `json:"integrity_verified"`
	FilesWithErrors   int    `json:"files_with_errors"`
	LastUpdate        string `json:"last_update"`
}

// FindingsSummary flags the artefact categories that were found.
type FindingsSummary struct {
	ContactsFound       string `json:"contacts_found"`
	CallLogsFound       string `json:"call_logs_found"`
	SMSMessagesFound    string `json:"sms_messages_found"`
	WhatsAppDataFound   string `json:"whatsapp_data_found"`
	GoogleMapsDataFound string `json:"google_maps_data_found"`
	ImagesFound         string `json:"images_found"`
	LocationDataFound   string `json:"location_data_found"`
	SignificantFindings string `json:"significant_findings"`
}

// TimelineAnalysis is the timeline section of a report.
type TimelineAnalysis struct {
	FirstActivity  string   `json:"first_activity"`
	LastActivity   string   `json:"last_activity"`
	KeyEvents      []string `json:"key_events"`
	ActivityPeriod string   `json:"activity_period"`
}

// Conclusions of a report.
type Conclusions struct {
	MainFindings    string   `json:"main_findings"`
	Recommendations []string `json:"recommendations"`
}

// Report is a forensic report. Reports are immutable once written.
type Report struct {
	ReportID           string             `json:"report_id"`
	GenerationDate     string             `json:"generation_date"`
	ReportType         string             `json:"report_type"`
	CaseReference      string             `json:"case_reference"`
	Investigator       string             `json:"investigator"`
	Version            string             `json:"version"`
	CaseDetails        CaseMetadata       `json:"case_details"`
	DeviceInformation  DeviceInformation  `json:"device_information"`
	AcquisitionDetails AcquisitionDetails `json:"acquisition_details"`
	ArtefactsExtracted ArtefactCounts     `json:"artefacts_extracted"`
	EvidenceChain      EvidenceChain      `json:"evidence_chain"`
	FindingsSummary    FindingsSummary    `json:"findings_summary"`
	TimelineAnalysis   TimelineAnalysis   `json:"timeline_analysis"`
	Conclusions        Conclusions        `json:"conclusions"`
	Disclaimer         string             `json:"disclaimer"`
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func deviceInformation(info DeviceInfo) (DeviceInformation, error) {
	device := DeviceInformation{
		DeviceModel:     info.DeviceModel,
		AndroidVersion:  info.AndroidVersion,
		Manufacturer:    info.Manufacturer,
		SerialNumber:    info.Serial,
		IMEI:            info.IMEI,
		StorageCapacity: info.Storage,
	}
	err := mergo.Merge(&device, DeviceInformation{
		DeviceModel:     "Unknown",
		AndroidVersion:  "Unknown",
		Manufacturer:    "Unknown",
		SerialNumber:    "N/A",
		IMEI:            "N/A",
		StorageCapacity: "N/A",
	})
	return device, err
}

func findingsSummary(data ExtractionData) FindingsSummary {
	significant := data.SignificantFindings
	if significant == "" {
		significant = "No significant data"
	}
	return FindingsSummary{
		ContactsFound:       yesNo(data.HasContacts),
		CallLogsFound:       yesNo(data.HasCalls),
		SMSMessagesFound:    yesNo(data.HasSMS),
		WhatsAppDataFound:   yesNo(data.HasWhatsApp),
		GoogleMapsDataFound: yesNo(data.HasGoogleMaps),
		ImagesFound:         yesNo(data.HasImages),
		LocationDataFound:   yesNo(data.HasLocation),
		SignificantFindings: significant,
	}
}

func timelineAnalysis(data ExtractionData, now string) TimelineAnalysis {
	timeline := TimelineAnalysis{
		FirstActivity:  data.FirstActivity,
		LastActivity:   data.LastActivity,
		KeyEvents:      data.KeyEvents,
		ActivityPeriod: "To be determined",
	}
	if timeline.FirstActivity == "" {
		timeline.FirstActivity = "N/A"
	}
	if timeline.LastActivity == "" {
		timeline.LastActivity = now
	}
	if timeline.KeyEvents == nil {
		timeline.KeyEvents = []string{}
	}
	return timeline
}
