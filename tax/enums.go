package tax

import "github.com/broady/stripe/enum"

// RegistrationStatus is the state of a registration.
type RegistrationStatus string

const (
	RegistrationStatusActive    RegistrationStatus = "active"
	RegistrationStatusExpired   RegistrationStatus = "expired"
	RegistrationStatusScheduled RegistrationStatus = "scheduled"
)

var registrationStatuses = enum.Strict("RegistrationStatus",
	RegistrationStatusActive, RegistrationStatusExpired, RegistrationStatusScheduled)

func ParseRegistrationStatus(s string) (RegistrationStatus, error) {
	return registrationStatuses.Parse(s)
}
func (v RegistrationStatus) String() string { return string(v) }
func (v RegistrationStatus) Known() bool    { return registrationStatuses.Known(v) }
func (v *RegistrationStatus) UnmarshalJSON(b []byte) error {
	return registrationStatuses.UnmarshalJSON(b, v)
}

// RegistrationFilter selects registrations by status when listing.
type RegistrationFilter string

const (
	RegistrationFilterActive    RegistrationFilter = "active"
	RegistrationFilterAll       RegistrationFilter = "all"
	RegistrationFilterExpired   RegistrationFilter = "expired"
	RegistrationFilterScheduled RegistrationFilter = "scheduled"
)

var registrationFilters = enum.Strict("RegistrationFilter",
	RegistrationFilterActive, RegistrationFilterAll, RegistrationFilterExpired, RegistrationFilterScheduled)

func ParseRegistrationFilter(s string) (RegistrationFilter, error) {
	return registrationFilters.Parse(s)
}
func (v RegistrationFilter) String() string { return string(v) }
func (v RegistrationFilter) Known() bool    { return registrationFilters.Known(v) }

// StandardType is the registration type of countries with a single scheme.
type StandardType string

const StandardTypeStandard StandardType = "standard"

var standardTypes = enum.Strict("StandardType", StandardTypeStandard)

func (v StandardType) String() string { return string(v) }
func (v StandardType) Known() bool    { return standardTypes.Known(v) }

// EUType is the registration type within the European Union.
type EUType string

const (
	EUTypeIOSS        EUType = "ioss"
	EUTypeOSSNonUnion EUType = "oss_non_union"
	EUTypeOSSUnion    EUType = "oss_union"
	EUTypeStandard    EUType = "standard"
)

var euTypes = enum.Strict("EUType", EUTypeIOSS, EUTypeOSSNonUnion, EUTypeOSSUnion, EUTypeStandard)

func ParseEUType(s string) (EUType, error) { return euTypes.Parse(s) }
func (v EUType) String() string            { return string(v) }
func (v EUType) Known() bool               { return euTypes.Known(v) }

// PlaceOfSupplyScheme applies to standard EU registrations.
type PlaceOfSupplyScheme string

const (
	PlaceOfSupplySmallSeller PlaceOfSupplyScheme = "small_seller"
	PlaceOfSupplyStandard    PlaceOfSupplyScheme = "standard"
)

var placeOfSupplySchemes = enum.Strict("PlaceOfSupplyScheme", PlaceOfSupplySmallSeller, PlaceOfSupplyStandard)

func (v PlaceOfSupplyScheme) String() string { return string(v) }
func (v PlaceOfSupplyScheme) Known() bool    { return placeOfSupplySchemes.Known(v) }

// CanadaType is the registration type in Canada.
type CanadaType string

const (
	CanadaTypeProvinceStandard CanadaType = "province_standard"
	CanadaTypeSimplified       CanadaType = "simplified"
	CanadaTypeStandard         CanadaType = "standard"
)

var canadaTypes = enum.Strict("CanadaType", CanadaTypeProvinceStandard, CanadaTypeSimplified, CanadaTypeStandard)

func (v CanadaType) String() string { return string(v) }
func (v CanadaType) Known() bool    { return canadaTypes.Known(v) }

// USType is the registration type in the United States.
type USType string

const (
	USTypeLocalAmusementTax      USType = "local_amusement_tax"
	USTypeLocalLeaseTax          USType = "local_lease_tax"
	USTypeStateCommunicationsTax USType = "state_communications_tax"
	USTypeStateSalesTax          USType = "state_sales_tax"
)

var usTypes = enum.Strict("USType",
	USTypeLocalAmusementTax, USTypeLocalLeaseTax, USTypeStateCommunicationsTax, USTypeStateSalesTax)

func ParseUSType(s string) (USType, error) { return usTypes.Parse(s) }
func (v USType) String() string            { return string(v) }
func (v USType) Known() bool               { return usTypes.Known(v) }

// OwnerType says who a tax ID belongs to.
type OwnerType string

const (
	OwnerTypeAccount     OwnerType = "account"
	OwnerTypeApplication OwnerType = "application"
	OwnerTypeCustomer    OwnerType = "customer"
	OwnerTypeSelf        OwnerType = "self"
)

var ownerTypes = enum.Strict("OwnerType", OwnerTypeAccount, OwnerTypeApplication, OwnerTypeCustomer, OwnerTypeSelf)

func ParseOwnerType(s string) (OwnerType, error)  { return ownerTypes.Parse(s) }
func (v OwnerType) String() string                { return string(v) }
func (v OwnerType) Known() bool                   { return ownerTypes.Known(v) }
func (v *OwnerType) UnmarshalJSON(b []byte) error { return ownerTypes.UnmarshalJSON(b, v) }

// VerificationStatus is the outcome of verifying a tax ID with the
// government registry.
type VerificationStatus string

const (
	VerificationPending     VerificationStatus = "pending"
	VerificationUnavailable VerificationStatus = "unavailable"
	VerificationUnverified  VerificationStatus = "unverified"
	VerificationVerified    VerificationStatus = "verified"
)

var verificationStatuses = enum.Strict("VerificationStatus",
	VerificationPending, VerificationUnavailable, VerificationUnverified, VerificationVerified)

func (v VerificationStatus) String() string { return string(v) }
func (v VerificationStatus) Known() bool    { return verificationStatuses.Known(v) }
func (v *VerificationStatus) UnmarshalJSON(b []byte) error {
	return verificationStatuses.UnmarshalJSON(b, v)
}

// IDType is the kind of a tax ID. New kinds appear regularly; kinds this
// package does not know decode to IDTypeUnknown, which cannot be sent.
type IDType string

// IDTypeUnknown stands for any kind not listed below.
const IDTypeUnknown IDType = ""

const (
	IDTypeADNRT    IDType = "ad_nrt"
	IDTypeAETRN    IDType = "ae_trn"
	IDTypeARCUIT   IDType = "ar_cuit"
	IDTypeAUABN    IDType = "au_abn"
	IDTypeAUARN    IDType = "au_arn"
	IDTypeBGUIC    IDType = "bg_uic"
	IDTypeBRCNPJ   IDType = "br_cnpj"
	IDTypeBRCPF    IDType = "br_cpf"
	IDTypeCABN     IDType = "ca_bn"
	IDTypeCAGSTHST IDType = "ca_gst_hst"
	IDTypeCAQST    IDType = "ca_qst"
	IDTypeCHVAT    IDType = "ch_vat"
	IDTypeCLTIN    IDType = "cl_tin"
	IDTypeCNTIN    IDType = "cn_tin"
	IDTypeCONIT    IDType = "co_nit"
	IDTypeDESTN    IDType = "de_stn"
	IDTypeESCIF    IDType = "es_cif"
	IDTypeEUVAT    IDType = "eu_vat"
	IDTypeGBVAT    IDType = "gb_vat"
	IDTypeINGST    IDType = "in_gst"
	IDTypeJPCN     IDType = "jp_cn"
	IDTypeJPRN     IDType = "jp_rn"
	IDTypeKRBRN    IDType = "kr_brn"
	IDTypeMXRFC    IDType = "mx_rfc"
	IDTypeNOVAT    IDType = "no_vat"
	IDTypeNZGST    IDType = "nz_gst"
	IDTypeSGGST    IDType = "sg_gst"
	IDTypeSGUEN    IDType = "sg_uen"
	IDTypeUSEIN    IDType = "us_ein"
	IDTypeZAVAT    IDType = "za_vat"
)

var idTypes = enum.Permissive("IDType", IDTypeUnknown,
	IDTypeADNRT, IDTypeAETRN, IDTypeARCUIT, IDTypeAUABN, IDTypeAUARN, IDTypeBGUIC,
	IDTypeBRCNPJ, IDTypeBRCPF, IDTypeCABN, IDTypeCAGSTHST, IDTypeCAQST, IDTypeCHVAT,
	IDTypeCLTIN, IDTypeCNTIN, IDTypeCONIT, IDTypeDESTN, IDTypeESCIF, IDTypeEUVAT,
	IDTypeGBVAT, IDTypeINGST, IDTypeJPCN, IDTypeJPRN, IDTypeKRBRN, IDTypeMXRFC,
	IDTypeNOVAT, IDTypeNZGST, IDTypeSGGST, IDTypeSGUEN, IDTypeUSEIN, IDTypeZAVAT,
)

// ParseIDType decodes a tax ID kind. It never fails.
func ParseIDType(s string) IDType {
	v, _ := idTypes.Parse(s)
	return v
}

func (v IDType) String() string {
	if v == IDTypeUnknown {
		return "unknown"
	}
	return string(v)
}

func (v IDType) Known() bool                   { return idTypes.Known(v) }
func (v *IDType) UnmarshalJSON(b []byte) error { return idTypes.UnmarshalJSON(b, v) }
