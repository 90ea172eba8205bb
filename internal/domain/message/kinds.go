package message

type MessageKind string

const (
	MessageKindText     MessageKind = "TEXT"
	MessageKindImage    MessageKind = "IMAGE"
	MessageKindFile     MessageKind = "FILE"
	MessageKindLocation MessageKind = "LOCATION"
)

func (k MessageKind) Valid() bool {
	switch k {
	case MessageKindText, MessageKindImage, MessageKindFile, MessageKindLocation:
		return true
	}
	return false
}

// RequiresAttachment reports whether the kind carries its payload as an
// attachment reference rather than the body field.
func (k MessageKind) RequiresAttachment() bool {
	return k == MessageKindImage || k == MessageKindFile || k == MessageKindLocation
}

// ServiceType tags a message with the service category the thread is about.
type ServiceType string

const (
	ServiceTypeNone          ServiceType = ""
	ServiceTypeVenue         ServiceType = "VENUE"
	ServiceTypeCatering      ServiceType = "CATERING"
	ServiceTypePhotography   ServiceType = "PHOTOGRAPHY"
	ServiceTypeFarmhouse     ServiceType = "FARMHOUSE"
	ServiceTypeAdvertisement ServiceType = "ADVERTISEMENT"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceTypeNone, ServiceTypeVenue, ServiceTypeCatering,
		ServiceTypePhotography, ServiceTypeFarmhouse, ServiceTypeAdvertisement:
		return true
	}
	return false
}
