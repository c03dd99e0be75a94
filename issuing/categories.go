package issuing

import "github.com/broady/stripe/enum"

// MerchantCategory is a merchant category used by spending controls.
//
// The server adds categories over time, so decoding never fails: categories
// this package does not know decode to MerchantCategoryUnknown. That value
// must not be sent back; requests carrying it fail to encode.
type MerchantCategory string

// MerchantCategoryUnknown stands for any category not listed below.
const MerchantCategoryUnknown MerchantCategory = ""

const (
	MerchantCategoryACRefrigerationRepair             MerchantCategory = "ac_refrigeration_repair"
	MerchantCategoryAccountingBookkeepingServices     MerchantCategory = "accounting_bookkeeping_services"
	MerchantCategoryAdvertisingServices               MerchantCategory = "advertising_services"
	MerchantCategoryAgriculturalCooperative           MerchantCategory = "agricultural_cooperative"
	MerchantCategoryAirlinesAirCarriers               MerchantCategory = "airlines_air_carriers"
	MerchantCategoryAirportsFlyingFields              MerchantCategory = "airports_flying_fields"
	MerchantCategoryAmbulanceServices                 MerchantCategory = "ambulance_services"
	MerchantCategoryAmusementParksCarnivals           MerchantCategory = "amusement_parks_carnivals"
	MerchantCategoryAntiqueShops                      MerchantCategory = "antique_shops"
	MerchantCategoryAquariums                         MerchantCategory = "aquariums"
	MerchantCategoryArtDealersAndGalleries            MerchantCategory = "art_dealers_and_galleries"
	MerchantCategoryAutoAndHomeSupplyStores           MerchantCategory = "auto_and_home_supply_stores"
	MerchantCategoryAutoServiceShops                  MerchantCategory = "auto_service_shops"
	MerchantCategoryAutomatedCashDisburse             MerchantCategory = "automated_cash_disburse"
	MerchantCategoryAutomatedFuelDispensers           MerchantCategory = "automated_fuel_dispensers"
	MerchantCategoryBakeries                          MerchantCategory = "bakeries"
	MerchantCategoryBarberAndBeautyShops              MerchantCategory = "barber_and_beauty_shops"
	MerchantCategoryBettingCasinoGambling             MerchantCategory = "betting_casino_gambling"
	MerchantCategoryBicycleShops                      MerchantCategory = "bicycle_shops"
	MerchantCategoryBookStores                        MerchantCategory = "book_stores"
	MerchantCategoryBusLines                          MerchantCategory = "bus_lines"
	MerchantCategoryCarRentalAgencies                 MerchantCategory = "car_rental_agencies"
	MerchantCategoryCarWashes                         MerchantCategory = "car_washes"
	MerchantCategoryCaterers                          MerchantCategory = "caterers"
	MerchantCategoryChildCareServices                 MerchantCategory = "child_care_services"
	MerchantCategoryComputerSoftwareStores            MerchantCategory = "computer_software_stores"
	MerchantCategoryDigitalGoodsMedia                 MerchantCategory = "digital_goods_media"
	MerchantCategoryDrugStoresAndPharmacies           MerchantCategory = "drug_stores_and_pharmacies"
	MerchantCategoryEatingPlacesRestaurants           MerchantCategory = "eating_places_restaurants"
	MerchantCategoryFastFoodRestaurants               MerchantCategory = "fast_food_restaurants"
	MerchantCategoryGroceryStoresSupermarkets         MerchantCategory = "grocery_stores_supermarkets"
	MerchantCategoryHotelsMotelsAndResorts            MerchantCategory = "hotels_motels_and_resorts"
	MerchantCategoryParkingLotsGarages                MerchantCategory = "parking_lots_garages"
	MerchantCategoryServiceStations                   MerchantCategory = "service_stations"
	MerchantCategoryTaxicabsLimousines                MerchantCategory = "taxicabs_limousines"
	MerchantCategoryTelecommunicationServices         MerchantCategory = "telecommunication_services"
	MerchantCategoryTollsBridgeFees                   MerchantCategory = "tolls_bridge_fees"
	MerchantCategoryWiresMoneyOrders                  MerchantCategory = "wires_money_orders"
	MerchantCategoryComputerNetworkServices           MerchantCategory = "computer_network_services"
	MerchantCategoryMiscellaneousGeneralMerchandise   MerchantCategory = "miscellaneous_general_merchandise"
	MerchantCategoryCharitableAndSocialServiceOrgs    MerchantCategory = "charitable_and_social_service_organizations_fundraising"
	MerchantCategoryCableSatelliteAndOtherPayTVRadio  MerchantCategory = "cable_satellite_and_other_pay_television_and_radio"
	MerchantCategoryCarAndTruckDealersNewUsed         MerchantCategory = "car_and_truck_dealers_new_used"
	MerchantCategoryCandyNutAndConfectioneryStores    MerchantCategory = "candy_nut_and_confectionery_stores"
	MerchantCategoryBooksPeriodicalsAndNewspapers     MerchantCategory = "books_periodicals_and_newspapers"
	MerchantCategoryAutomotivePartsAndAccessoryStores MerchantCategory = "automotive_parts_and_accessories_stores"
)

var merchantCategories = enum.Permissive("MerchantCategory", MerchantCategoryUnknown,
	MerchantCategoryACRefrigerationRepair,
	MerchantCategoryAccountingBookkeepingServices,
	MerchantCategoryAdvertisingServices,
	MerchantCategoryAgriculturalCooperative,
	MerchantCategoryAirlinesAirCarriers,
	MerchantCategoryAirportsFlyingFields,
	MerchantCategoryAmbulanceServices,
	MerchantCategoryAmusementParksCarnivals,
	MerchantCategoryAntiqueShops,
	MerchantCategoryAquariums,
	MerchantCategoryArtDealersAndGalleries,
	MerchantCategoryAutoAndHomeSupplyStores,
	MerchantCategoryAutoServiceShops,
	MerchantCategoryAutomatedCashDisburse,
	MerchantCategoryAutomatedFuelDispensers,
	MerchantCategoryBakeries,
	MerchantCategoryBarberAndBeautyShops,
	MerchantCategoryBettingCasinoGambling,
	MerchantCategoryBicycleShops,
	MerchantCategoryBookStores,
	MerchantCategoryBusLines,
	MerchantCategoryCarRentalAgencies,
	MerchantCategoryCarWashes,
	MerchantCategoryCaterers,
	MerchantCategoryChildCareServices,
	MerchantCategoryComputerSoftwareStores,
	MerchantCategoryDigitalGoodsMedia,
	MerchantCategoryDrugStoresAndPharmacies,
	MerchantCategoryEatingPlacesRestaurants,
	MerchantCategoryFastFoodRestaurants,
	MerchantCategoryGroceryStoresSupermarkets,
	MerchantCategoryHotelsMotelsAndResorts,
	MerchantCategoryParkingLotsGarages,
	MerchantCategoryServiceStations,
	MerchantCategoryTaxicabsLimousines,
	MerchantCategoryTelecommunicationServices,
	MerchantCategoryTollsBridgeFees,
	MerchantCategoryWiresMoneyOrders,
	MerchantCategoryComputerNetworkServices,
	MerchantCategoryMiscellaneousGeneralMerchandise,
	MerchantCategoryCharitableAndSocialServiceOrgs,
	MerchantCategoryCableSatelliteAndOtherPayTVRadio,
	MerchantCategoryCarAndTruckDealersNewUsed,
	MerchantCategoryCandyNutAndConfectioneryStores,
	MerchantCategoryBooksPeriodicalsAndNewspapers,
	MerchantCategoryAutomotivePartsAndAccessoryStores,
)

// ParseMerchantCategory decodes a category. It never fails; unrecognized
// strings yield MerchantCategoryUnknown.
func ParseMerchantCategory(s string) MerchantCategory {
	v, _ := merchantCategories.Parse(s)
	return v
}

// MerchantCategories returns every known category.
func MerchantCategories() []MerchantCategory { return merchantCategories.Values() }

func (v MerchantCategory) String() string {
	if v == MerchantCategoryUnknown {
		return "unknown"
	}
	return string(v)
}

// Known reports false for MerchantCategoryUnknown and any unlisted string.
func (v MerchantCategory) Known() bool { return merchantCategories.Known(v) }

func (v *MerchantCategory) UnmarshalJSON(b []byte) error {
	return merchantCategories.UnmarshalJSON(b, v)
}
