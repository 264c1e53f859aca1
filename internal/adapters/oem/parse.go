package oem

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samirrijal/isstracker/internal/core/domain"
)

// ndmDocument mirrors the CCSDS NDM/OEM XML layout published by NASA.
type ndmDocument struct {
	XMLName xml.Name `xml:"ndm"`
	OEM     struct {
		ID      string `xml:"id,attr"`
		Version string `xml:"version,attr"`
		Header  struct {
			CreationDate string `xml:"CREATION_DATE"`
			Originator   string `xml:"ORIGINATOR"`
		} `xml:"header"`
		Body struct {
			Segment struct {
				Metadata xmlMetadata `xml:"metadata"`
				Data     struct {
					Comments     []string         `xml:"COMMENT"`
					StateVectors []xmlStateVector `xml:"stateVector"`
				} `xml:"data"`
			} `xml:"segment"`
		} `xml:"body"`
	} `xml:"oem"`
}

type xmlMetadata struct {
	ObjectName       string `xml:"OBJECT_NAME"`
	ObjectID         string `xml:"OBJECT_ID"`
	CenterName       string `xml:"CENTER_NAME"`
	RefFrame         string `xml:"REF_FRAME"`
	TimeSystem       string `xml:"TIME_SYSTEM"`
	StartTime        string `xml:"START_TIME"`
	UseableStartTime string `xml:"USEABLE_START_TIME"`
	UseableStopTime  string `xml:"USEABLE_STOP_TIME"`
	StopTime         string `xml:"STOP_TIME"`
}

type xmlQuantity struct {
	Units string `xml:"units,attr"`
	Value string `xml:",chardata"`
}

type xmlStateVector struct {
	Epoch string      `xml:"EPOCH"`
	X     xmlQuantity `xml:"X"`
	Y     xmlQuantity `xml:"Y"`
	Z     xmlQuantity `xml:"Z"`
	XDot  xmlQuantity `xml:"X_DOT"`
	YDot  xmlQuantity `xml:"Y_DOT"`
	ZDot  xmlQuantity `xml:"Z_DOT"`
}

// Parse decodes an OEM XML document.
func Parse(r io.Reader) (*domain.Dataset, error) {
	var doc ndmDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode oem: %w", err)
	}

	seg := doc.OEM.Body.Segment
	ds := &domain.Dataset{
		ID:      doc.OEM.ID,
		Version: doc.OEM.Version,
		Header: domain.Header{
			CreationDate: strings.TrimSpace(doc.OEM.Header.CreationDate),
			Originator:   strings.TrimSpace(doc.OEM.Header.Originator),
		},
		Metadata: domain.Metadata{
			ObjectName:       strings.TrimSpace(seg.Metadata.ObjectName),
			ObjectID:         strings.TrimSpace(seg.Metadata.ObjectID),
			CenterName:       strings.TrimSpace(seg.Metadata.CenterName),
			RefFrame:         strings.TrimSpace(seg.Metadata.RefFrame),
			TimeSystem:       strings.TrimSpace(seg.Metadata.TimeSystem),
			StartTime:        strings.TrimSpace(seg.Metadata.StartTime),
			UseableStartTime: strings.TrimSpace(seg.Metadata.UseableStartTime),
			UseableStopTime:  strings.TrimSpace(seg.Metadata.UseableStopTime),
			StopTime:         strings.TrimSpace(seg.Metadata.StopTime),
		},
		Comments:     make([]string, 0, len(seg.Data.Comments)),
		StateVectors: make([]domain.StateVector, 0, len(seg.Data.StateVectors)),
	}

	for _, c := range seg.Data.Comments {
		ds.Comments = append(ds.Comments, strings.TrimSpace(c))
	}

	for i, raw := range seg.Data.StateVectors {
		sv, err := raw.toDomain()
		if err != nil {
			return nil, fmt.Errorf("state vector %d: %w", i, err)
		}
		ds.StateVectors = append(ds.StateVectors, sv)
	}

	return ds, nil
}

func (v xmlStateVector) toDomain() (domain.StateVector, error) {
	sv := domain.StateVector{Epoch: strings.TrimSpace(v.Epoch)}
	fields := []struct {
		name string
		src  xmlQuantity
		dst  *domain.Quantity
	}{
		{"X", v.X, &sv.X},
		{"Y", v.Y, &sv.Y},
		{"Z", v.Z, &sv.Z},
		{"X_DOT", v.XDot, &sv.XDot},
		{"Y_DOT", v.YDot, &sv.YDot},
		{"Z_DOT", v.ZDot, &sv.ZDot},
	}
	for _, f := range fields {
		val, err := strconv.ParseFloat(strings.TrimSpace(f.src.Value), 64)
		if err != nil {
			return sv, fmt.Errorf("%s at %s: %w", f.name, sv.Epoch, err)
		}
		*f.dst = domain.Quantity{Value: val, Units: f.src.Units}
	}
	return sv, nil
}
