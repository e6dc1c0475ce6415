// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh upper-case UUID v4, the form ProPresenter writes.
func NewID() string {
	return strings.ToUpper(uuid.NewString())
}

// Fixed document attributes written by ProPresenter 6.0.
const (
	buildNumber   = "100991490"
	versionNumber = "600"
	lastDateUsed  = "2020-11-03T20:44:45-05:00"
	docWidth      = "1920"
	docHeight     = "1200"

	groupColor          = "0 0 0.9981889724731445 1"
	blankHighlightColor = "0.9859483242034912 0 0.02695056796073914 1"
)

type pro6Document struct {
	XMLName               xml.Name `xml:"RVPresentationDocument"`
	CCLIArtistCredits     string   `xml:"CCLIArtistCredits,attr"`
	CCLIAuthor            string   `xml:"CCLIAuthor,attr"`
	CCLICopyrightYear     string   `xml:"CCLICopyrightYear,attr"`
	CCLIDisplay           string   `xml:"CCLIDisplay,attr"`
	CCLIPublisher         string   `xml:"CCLIPublisher,attr"`
	CCLISongNumber        string   `xml:"CCLISongNumber,attr"`
	CCLISongTitle         string   `xml:"CCLISongTitle,attr"`
	BackgroundColor       string   `xml:"backgroundColor,attr"`
	BuildNumber           string   `xml:"buildNumber,attr"`
	Category              string   `xml:"category,attr"`
	ChordChartPath        string   `xml:"chordChartPath,attr"`
	DocType               string   `xml:"docType,attr"`
	DrawingBackground     string   `xml:"drawingBackgroundColor,attr"`
	Height                string   `xml:"height,attr"`
	LastDateUsed          string   `xml:"lastDateUsed,attr"`
	Notes                 string   `xml:"notes,attr"`
	OS                    string   `xml:"os,attr"`
	ResourcesDirectory    string   `xml:"resourcesDirectory,attr"`
	SelectedArrangementID string   `xml:"selectedArrangementID,attr"`
	UsedCount             string   `xml:"usedCount,attr"`
	UUID                  string   `xml:"uuid,attr"`
	VersionNumber         string   `xml:"versionNumber,attr"`
	Width                 string   `xml:"width,attr"`

	Timeline     timeline
	Groups       groupArray
	Arrangements emptyArray
}

type timeline struct {
	XMLName                 xml.Name `xml:"RVTimeline"`
	Duration                string   `xml:"duration,attr"`
	Loop                    string   `xml:"loop,attr"`
	PlayBackRate            string   `xml:"playBackRate,attr"`
	Ivar                    string   `xml:"rvXMLIvarName,attr"`
	SelectedMediaTrackIndex string   `xml:"selectedMediaTrackIndex,attr"`
	TimeOffset              string   `xml:"timeOffset,attr"`

	TimeCues    emptyArray
	MediaTracks emptyArray
}

type emptyArray struct {
	XMLName xml.Name `xml:"array"`
	Ivar    string   `xml:"rvXMLIvarName,attr"`
}

type groupArray struct {
	XMLName xml.Name `xml:"array"`
	Ivar    string   `xml:"rvXMLIvarName,attr"`
	Groups  []slideGrouping
}

type slideGrouping struct {
	XMLName xml.Name `xml:"RVSlideGrouping"`
	Color   string   `xml:"color,attr"`
	Name    string   `xml:"name,attr"`
	UUID    string   `xml:"uuid,attr"`
	Slides  slideArray
}

type slideArray struct {
	XMLName xml.Name `xml:"array"`
	Ivar    string   `xml:"rvXMLIvarName,attr"`
	Slides  []displaySlide
}

type displaySlide struct {
	XMLName           xml.Name `xml:"RVDisplaySlide"`
	UUID              string   `xml:"UUID,attr"`
	BackgroundColor   string   `xml:"backgroundColor,attr"`
	ChordChartPath    string   `xml:"chordChartPath,attr"`
	DrawingBackground string   `xml:"drawingBackgroundColor,attr"`
	Enabled           string   `xml:"enabled,attr"`
	HighlightColor    string   `xml:"highlightColor,attr"`
	HotKey            string   `xml:"hotKey,attr"`
	Label             string   `xml:"label,attr"`
	Notes             string   `xml:"notes,attr"`
	SocialItemCount   string   `xml:"socialItemCount,attr"`

	Cues     emptyArray
	Elements elementArray
}

type elementArray struct {
	XMLName  xml.Name `xml:"array"`
	Ivar     string   `xml:"rvXMLIvarName,attr"`
	Elements []textElement
}

type textElement struct {
	XMLName                  xml.Name `xml:"RVTextElement"`
	UUID                     string   `xml:"UUID,attr"`
	AdditionalLineFillHeight string   `xml:"additionalLineFillHeight,attr"`
	AdjustsHeightToFit       string   `xml:"adjustsHeightToFit,attr"`
	BezelRadius              string   `xml:"bezelRadius,attr"`
	DisplayDelay             string   `xml:"displayDelay,attr"`
	DisplayName              string   `xml:"displayName,attr"`
	DrawLineBackground       string   `xml:"drawLineBackground,attr"`
	DrawingFill              string   `xml:"drawingFill,attr"`
	DrawingShadow            string   `xml:"drawingShadow,attr"`
	DrawingStroke            string   `xml:"drawingStroke,attr"`
	FillColor                string   `xml:"fillColor,attr"`
	FromTemplate             string   `xml:"fromTemplate,attr"`
	LineBackgroundType       string   `xml:"lineBackgroundType,attr"`
	LineFillVerticalOffset   string   `xml:"lineFillVerticalOffset,attr"`
	Locked                   string   `xml:"locked,attr"`
	Opacity                  string   `xml:"opacity,attr"`
	Persistent               string   `xml:"persistent,attr"`
	RevealType               string   `xml:"revealType,attr"`
	Rotation                 string   `xml:"rotation,attr"`
	Source                   string   `xml:"source,attr"`
	RemoveLineReturnsOption  string   `xml:"textSourceRemoveLineReturnsOption,attr"`
	TypeID                   string   `xml:"typeID,attr"`
	UseAllCaps               string   `xml:"useAllCaps,attr"`
	VerticalAlignment        string   `xml:"verticalAlignment,attr"`

	Position ivarValue `xml:"RVRect3D"`
	Shadow   ivarValue `xml:"shadow"`
	Stroke   stroke
	RTFData  ivarValue `xml:"NSString"`
}

type ivarValue struct {
	Ivar  string `xml:"rvXMLIvarName,attr"`
	Value string `xml:",chardata"`
}

type stroke struct {
	XMLName xml.Name `xml:"dictionary"`
	Ivar    string   `xml:"rvXMLIvarName,attr"`
	Color   struct {
		Key   string `xml:"rvXMLDictionaryKey,attr"`
		Value string `xml:",chardata"`
	} `xml:"NSColor"`
	Width struct {
		Hint  string `xml:"hint,attr"`
		Key   string `xml:"rvXMLDictionaryKey,attr"`
		Value string `xml:",chardata"`
	} `xml:"NSNumber"`
}

// elementStyle carries what differs between the caption, title and body
// text elements.
type elementStyle struct {
	displayName       string
	fillColor         string
	verticalAlignment string
	position          string
	shadow            string
	strokeHint        string
	strokeWidth       string
}

var (
	captionStyle = elementStyle{
		displayName:       "TextElement",
		fillColor:         "",
		verticalAlignment: "0",
		position:          "{991 1042 0 852 80}",
		shadow:            "0.000000|0 0 0 1|{4.94974746830583, -4.94974746830583}",
		strokeHint:        "float",
		strokeWidth:       "1.000000",
	}
	titleStyle = elementStyle{
		displayName:       "TextElement",
		fillColor:         "1 1 1 1",
		verticalAlignment: "1",
		position:          "{67 58 0 1813 230}",
		shadow:            "0.000000|0 0 0 0.3294117748737335|{4, -4}",
		strokeHint:        "float",
		strokeWidth:       "1.000000",
	}
	bodyStyle = elementStyle{
		displayName:       "Default",
		fillColor:         "1 1 1 1",
		verticalAlignment: "0",
		position:          "{82 2 0 1755 1195}",
		shadow:            "0.000000|0 0 0 1|{4, -4}",
		strokeHint:        "double",
		strokeWidth:       "0.000000",
	}
)

// MarshalPro6 serializes d as a ProPresenter 6 document. newID supplies the
// uuid of every node; NewID is used when it is nil.
func (d Document) MarshalPro6(newID func() string) ([]byte, error) {
	if newID == nil {
		newID = NewID
	}

	groups := make([]slideGrouping, 0, len(d.Groups)+1)
	groups = append(groups, blankGroup(newID))
	for _, g := range d.Groups {
		sg := slideGrouping{
			Color:  groupColor,
			Name:   g.Name,
			UUID:   newID(),
			Slides: slideArray{Ivar: "slides"},
		}
		for _, s := range g.Slides {
			sg.Slides.Slides = append(sg.Slides.Slides, contentSlide(s, newID))
		}
		groups = append(groups, sg)
	}

	doc := pro6Document{
		CCLIArtistCredits: d.Author,
		CCLICopyrightYear: d.Year,
		CCLIDisplay:       "true",
		CCLISongTitle:     d.Title,
		BackgroundColor:   "0 0 0 0",
		BuildNumber:       buildNumber,
		Category:          "Presentation",
		DocType:           "0",
		DrawingBackground: "false",
		Height:            docHeight,
		LastDateUsed:      lastDateUsed,
		OS:                "2",
		UsedCount:         "0",
		UUID:              newID(),
		VersionNumber:     versionNumber,
		Width:             docWidth,
		Timeline: timeline{
			Duration:                "0.000000",
			Loop:                    "false",
			PlayBackRate:            "1.000000",
			Ivar:                    "timeline",
			SelectedMediaTrackIndex: "0",
			TimeOffset:              "0.000000",
			TimeCues:                emptyArray{Ivar: "timeCues"},
			MediaTracks:             emptyArray{Ivar: "mediaTracks"},
		},
		Groups:       groupArray{Ivar: "groups", Groups: groups},
		Arrangements: emptyArray{Ivar: "arrangements"},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding document %s: %w", d.ID, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func blankGroup(newID func() string) slideGrouping {
	return slideGrouping{
		Color: "0 0 0 0",
		UUID:  newID(),
		Slides: slideArray{
			Ivar: "slides",
			Slides: []displaySlide{{
				UUID:              newID(),
				BackgroundColor:   "0 0 0 1",
				DrawingBackground: "false",
				Enabled:           "true",
				HighlightColor:    blankHighlightColor,
				Label:             "Blank Slide",
				SocialItemCount:   "1",
				Cues:              emptyArray{Ivar: "cues"},
				Elements:          elementArray{Ivar: "displayElements"},
			}},
		},
	}
}

func contentSlide(s Slide, newID func() string) displaySlide {
	return displaySlide{
		UUID:              newID(),
		BackgroundColor:   "0 0 0 1",
		DrawingBackground: "false",
		Enabled:           "true",
		HighlightColor:    "0 0 0 0",
		SocialItemCount:   "1",
		Cues:              emptyArray{Ivar: "cues"},
		Elements: elementArray{
			Ivar: "displayElements",
			Elements: []textElement{
				element(captionStyle, CaptionRTF(s.Caption), newID),
				element(titleStyle, TitleRTF(s.Title), newID),
				element(bodyStyle, BodyRTF(s.Body), newID),
			},
		},
	}
}

func element(st elementStyle, rtf string, newID func() string) textElement {
	e := textElement{
		UUID:                     newID(),
		AdditionalLineFillHeight: "0.000000",
		AdjustsHeightToFit:       "false",
		BezelRadius:              "0.000000",
		DisplayDelay:             "0.000000",
		DisplayName:              st.displayName,
		DrawLineBackground:       "false",
		DrawingFill:              "false",
		DrawingShadow:            "false",
		DrawingStroke:            "false",
		FillColor:                st.fillColor,
		FromTemplate:             "false",
		LineBackgroundType:       "0",
		LineFillVerticalOffset:   "0.000000",
		Locked:                   "false",
		Opacity:                  "1.000000",
		Persistent:               "false",
		RevealType:               "0",
		Rotation:                 "0.000000",
		RemoveLineReturnsOption:  "false",
		TypeID:                   "0",
		UseAllCaps:               "false",
		VerticalAlignment:        st.verticalAlignment,
		Position:                 ivarValue{Ivar: "position", Value: st.position},
		Shadow:                   ivarValue{Ivar: "shadow", Value: st.shadow},
		Stroke:                   stroke{Ivar: "stroke"},
		RTFData:                  ivarValue{Ivar: "RTFData", Value: encode(rtf)},
	}
	e.Stroke.Color.Key = "RVShapeElementStrokeColorKey"
	e.Stroke.Color.Value = "0 0 0 1"
	e.Stroke.Width.Hint = st.strokeHint
	e.Stroke.Width.Key = "RVShapeElementStrokeWidthKey"
	e.Stroke.Width.Value = st.strokeWidth
	return e
}
