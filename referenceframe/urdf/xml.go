package urdf

import (
	"encoding/xml"
)

// robotXML mirrors the parts of a <robot> document that are read. Everything else is ignored.
type robotXML struct {
	XMLName   xml.Name      `xml:"robot"`
	Name      string        `xml:"name,attr"`
	Materials []materialXML `xml:"material"`
	Links     []linkXML     `xml:"link"`
	Joints    []jointXML    `xml:"joint"`
}

type materialXML struct {
	Name  string    `xml:"name,attr"`
	RGBA  string    `xml:"rgba,attr"`
	Color *colorXML `xml:"color"`
}

type colorXML struct {
	RGBA string `xml:"rgba,attr"`
}

// rgba returns the color text of a material, preferring a nested <color> over the attribute.
func (m *materialXML) rgba() string {
	if m.Color != nil && m.Color.RGBA != "" {
		return m.Color.RGBA
	}
	return m.RGBA
}

type linkXML struct {
	Name   string     `xml:"name,attr"`
	Visual *visualXML `xml:"visual"`
}

type visualXML struct {
	Origin   *originXML   `xml:"origin"`
	Geometry *geometryXML `xml:"geometry"`
	Material *materialXML `xml:"material"`
}

type originXML struct {
	XYZ string `xml:"xyz,attr"` // "x y z" format, in meters
	RPY string `xml:"rpy,attr"` // Fixed frame angle "r p y" format, in radians
}

type jointXML struct {
	Name   string     `xml:"name,attr"`
	Type   string     `xml:"type,attr"`
	Parent linkRefXML `xml:"parent"`
	Child  linkRefXML `xml:"child"`
	Origin *originXML `xml:"origin"`
	Axis   *axisXML   `xml:"axis"`
}

type linkRefXML struct {
	Link string `xml:"link,attr"`
}

type axisXML struct {
	XYZ string `xml:"xyz,attr"`
}

// geometryXML keeps only the first child of <geometry>, which names the shape.
type geometryXML struct {
	Kind   string
	Size   string
	Radius string
	Length string
}

// UnmarshalXML records the tag and dimension attributes of the first child element and skips the rest.
func (g *geometryXML) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if g.Kind == "" {
				g.Kind = t.Name.Local
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "size":
						g.Size = attr.Value
					case "radius":
						g.Radius = attr.Value
					case "length":
						g.Length = attr.Value
					}
				}
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}
