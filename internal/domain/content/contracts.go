package content

import "trustcms/internal/form"

func str(name string) form.FieldSpec {
	return form.FieldSpec{Name: name, Type: form.TypeString, Optional: true}
}

func html(name string) form.FieldSpec {
	return form.FieldSpec{Name: name, Type: form.TypeString, Optional: true, Sanitize: true}
}

func year(name string) form.FieldSpec {
	return form.FieldSpec{Name: name, Type: form.TypeInteger, Optional: true}
}

var (
	order  = form.FieldSpec{Name: "order", Type: form.TypeNumber, Optional: true, Rule: "gte=0"}
	active = form.FieldSpec{Name: "active", Type: form.TypeBoolean, Optional: true}
)

var memberFields = []form.FieldSpec{
	str("image"),
	str("title"),
	str("desig"),
	str("popupImg"),
	html("popupdesc"),
	str("link"),
	str("socialMedia"),
	order,
	active,
}

var galleryFields = []form.FieldSpec{
	str("image"),
	str("title"),
	str("popupImg"),
	html("popupdesc"),
	year("year"),
	order,
	active,
}

var paperFields = []form.FieldSpec{
	str("image"),
	str("title"),
	str("authors"),
	str("link"),
	year("publicationYear"),
	order,
	active,
}

var mediaFields = []form.FieldSpec{
	str("image"),
	str("title"),
	str("publisher"),
	str("link"),
	year("publicationYear"),
	order,
	active,
}

var definitions = []Definition{
	{
		Kind:       KindPatron,
		Collection: "patrons",
		Contract:   form.Contract{Entity: string(KindPatron), Fields: memberFields},
		newPayload: func() any { return new(Member) },
	},
	{
		Kind:       KindTeam,
		Collection: "team",
		Contract:   form.Contract{Entity: string(KindTeam), Fields: memberFields},
		newPayload: func() any { return new(Member) },
	},
	{
		Kind:       KindTrustee,
		Collection: "trustees",
		Contract:   form.Contract{Entity: string(KindTrustee), Fields: memberFields},
		newPayload: func() any { return new(Member) },
	},
	{
		Kind:       KindGallery,
		Collection: "gallery",
		Contract:   form.Contract{Entity: string(KindGallery), Fields: galleryFields},
		newPayload: func() any { return new(GalleryItem) },
	},
	{
		Kind:       KindPaper,
		Collection: "papers",
		Contract:   form.Contract{Entity: string(KindPaper), Fields: paperFields},
		newPayload: func() any { return new(Paper) },
	},
	{
		Kind:       KindMedia,
		Collection: "media",
		Contract:   form.Contract{Entity: string(KindMedia), Fields: mediaFields},
		newPayload: func() any { return new(MediaItem) },
	},
}
