package exifmeta

import "sort"

// TagDef is a registry entry.
type TagDef struct {
	ID   ID
	Name string
	// Type is the field type the EXIF standard prescribes for the tag.
	// Decoding honours the type declared in the file, not this one.
	Type Type
}

type tagdef struct {
	Name    string
	Type    Type
	pointer bool
}

// tags is the static registry. IDs missing here are never reported by the decoder.
var tags = map[ID]tagdef{
	0x0100: {Name: "ImageWidth", Type: TypeUint32},
	0x0101: {Name: "ImageHeight", Type: TypeUint32},
	0x0102: {Name: "BitsPerSample", Type: TypeUint16},
	0x0103: {Name: "Compression", Type: TypeUint16},
	0x010e: {Name: "ImageDescription", Type: TypeString},
	0x010f: {Name: "Make", Type: TypeString},
	0x0110: {Name: "Model", Type: TypeString},
	0x0112: {Name: "Orientation", Type: TypeUint16},
	0x011a: {Name: "XResolution", Type: TypeURational64},
	0x011b: {Name: "YResolution", Type: TypeURational64},
	0x0128: {Name: "ResolutionUnit", Type: TypeUint16},
	0x0131: {Name: "Software", Type: TypeString},
	0x0132: {Name: "DateTime", Type: TypeString},
	0x013b: {Name: "Artist", Type: TypeString},
	0x0213: {Name: "YCbCrPositioning", Type: TypeUint16},
	0x8298: {Name: "Copyright", Type: TypeString},
	0x829a: {Name: "ExposureTime", Type: TypeURational64},
	0x829d: {Name: "FNumber", Type: TypeURational64},
	0x8769: {Name: "ExifOffset", Type: TypeUint32, pointer: true},
	0x8822: {Name: "ExposureProgram", Type: TypeUint16},
	0x8825: {Name: "GPSInfo", Type: TypeUint32, pointer: true},
	0x8827: {Name: "ISO", Type: TypeUint16},
	0x9000: {Name: "ExifVersion", Type: TypeUndefined},
	0x9003: {Name: "DateTimeOriginal", Type: TypeString},
	0x9004: {Name: "CreateDate", Type: TypeString},
	0x9201: {Name: "ShutterSpeedValue", Type: TypeRational64},
	0x9202: {Name: "ApertureValue", Type: TypeURational64},
	0x9203: {Name: "BrightnessValue", Type: TypeRational64},
	0x9204: {Name: "ExposureCompensation", Type: TypeRational64},
	0x9205: {Name: "MaxApertureValue", Type: TypeURational64},
	0x9206: {Name: "SubjectDistance", Type: TypeURational64},
	0x9207: {Name: "MeteringMode", Type: TypeUint16},
	0x9208: {Name: "LightSource", Type: TypeUint16},
	0x9209: {Name: "Flash", Type: TypeUint16},
	0x920a: {Name: "FocalLength", Type: TypeURational64},
	0xa001: {Name: "ColorSpace", Type: TypeUint16},
	0xa002: {Name: "ExifImageWidth", Type: TypeUint32},
	0xa003: {Name: "ExifImageHeight", Type: TypeUint32},
	0xa005: {Name: "InteropOffset", Type: TypeUint32, pointer: true},
	0xa402: {Name: "ExposureMode", Type: TypeUint16},
	0xa403: {Name: "WhiteBalance", Type: TypeUint16},
	0xa404: {Name: "DigitalZoomRatio", Type: TypeURational64},
	0xa405: {Name: "FocalLengthIn35mmFormat", Type: TypeUint16},
	0xa406: {Name: "SceneCaptureType", Type: TypeUint16},
	0xa433: {Name: "LensMake", Type: TypeString},
	0xa434: {Name: "LensModel", Type: TypeString},
}

// Registered returns every registry entry sorted by ID.
func Registered() []TagDef {
	defs := make([]TagDef, 0, len(tags))
	for id, def := range tags {
		defs = append(defs, TagDef{ID: id, Name: def.Name, Type: def.Type})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}
