package catalog

import "evsops/pkg/domain"

// Reference data for the campus. Mirrors the contract annexes: three risk
// zones, one weighted checklist per zone, and the full location register.

// DefectKeys are the predefined defect tags selectable on every checklist item.
var DefectKeys = []string{
	"defect_dust",
	"defect_stains",
	"defect_rust",
	"defect_needs_cleaning",
	"defect_needs_maintenance",
}

func items(prefix string, maxScores []int) []EvaluationItem {
	out := make([]EvaluationItem, len(maxScores))
	for i, max := range maxScores {
		id := prefix + "_item_" + itoa(i+1)
		out[i] = EvaluationItem{
			ID:                domain.ItemID(id),
			Name:              id,
			MaxScore:          max,
			PredefinedDefects: DefectKeys,
		}
	}
	return out
}

// itoa avoids pulling strconv into a data file for two-digit indexes.
func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

func loc(id, ar, en string, zone domain.ZoneID, form domain.FormID) Location {
	return Location{
		ID:     domain.LocationID(id),
		Name:   domain.BilingualName{Ar: ar, En: en},
		ZoneID: zone,
		FormID: form,
	}
}

// Default returns the catalog seeded with the campus reference data.
func Default() *Catalog {
	zones := []Zone{
		{ID: "zone_high", Name: domain.BilingualName{En: "Critical Areas", Ar: "المناطق الحرجة"}, RiskCategory: domain.RiskHigh},
		{ID: "zone_medium", Name: domain.BilingualName{En: "Medium Risk Areas", Ar: "المناطق متوسطة الخطورة"}, RiskCategory: domain.RiskMedium},
		{ID: "zone_low", Name: domain.BilingualName{En: "General Areas", Ar: "المناطق العامة"}, RiskCategory: domain.RiskLow},
	}

	forms := []InspectionForm{
		{
			ID:    "form1",
			Name:  domain.BilingualName{En: "High-Risk Area Inspection Form", Ar: "نموذج تفتيش المناطق عالية الخطورة"},
			Items: items("hr", []int{6, 6, 12, 12, 6, 5, 6, 7, 10, 7, 5, 4, 5, 5, 4}),
		},
		{
			ID:    "form2",
			Name:  domain.BilingualName{En: "Medium-Risk Area Inspection Form", Ar: "نموذج تفتيش المناطق متوسطة الخطورة"},
			Items: items("mr", []int{3, 6, 6, 4, 10, 7, 5, 6, 6, 10, 9, 7, 5, 4, 5, 4}),
		},
		{
			ID:    "form3",
			Name:  domain.BilingualName{En: "Low-Risk Area Inspection Form", Ar: "نموذج تفتيش المناطق منخفضة الخطورة"},
			Items: items("lr", []int{6, 10, 8, 4, 10, 7, 5, 7, 7, 6, 6, 5, 10, 5, 4}),
		},
	}

	locations := []Location{
		// High risk
		loc("loc_h_1", "جناح 8-7، NTCC", "Ward 7-8, NTCC", "zone_high", "form1"),
		loc("loc_h_2", "جناح 23-22، مبنى السموم", "Ward 22-23, Toxicology Bldg", "zone_high", "form1"),
		loc("loc_h_3", "جناح 6-13-14-15، منطقة الطوارئ", "Ward 6-13-14-15, ER Area", "zone_high", "form1"),
		loc("loc_h_4", "جناح 5، CSSD", "Ward 5, CSSD", "zone_high", "form1"),
		loc("loc_h_5", "جناح 24-25، منطقة الطوارئ، NTCC قسم الولادة", "Ward 24-25, ER Area, NTCC Labor Rm", "zone_high", "form1"),
		loc("loc_h_6", "جناح 17-18-20، وحدة العناية المركزة وأجنحتها", "Ward 17-18-20, ICU & Wings", "zone_high", "form1"),

		// Medium risk
		loc("loc_m_1", "مركز الأميرة نورة (طابقين)", "Princess Noura Center (2 Floors)", "zone_medium", "form2"),
		loc("loc_m_2", "وحدة عناية المرأة وأجنحتها", "Women's Care Unit & Wings", "zone_medium", "form2"),
		loc("loc_m_3", "وحدة علاج NTCC", "NTCC Treatment Unit", "zone_medium", "form2"),
		loc("loc_m_4", "غرف العمليات الرئيسية", "Main Operating Rooms", "zone_medium", "form2"),
		loc("loc_m_5", "MC1-MC3، مركز القلب (ثلاثة طوابق)", "MC1-MC3, Heart Center (3 Floors)", "zone_medium", "form2"),
		loc("loc_m_6", "غرف العمليات الرئيسية، NTCC إصابات الحرائق", "Main OR, NTCC Burns Unit", "zone_medium", "form2"),
		loc("loc_m_7", "غرف العمليات جميع الأجنحة", "All OR Wings", "zone_medium", "form2"),
		loc("loc_m_8", "قيادة الطب العسكري الميداني", "Field Military Medicine Command", "zone_medium", "form2"),
		loc("loc_m_9", "إدارة المشاريع الداخلية", "Internal Projects Dept.", "zone_medium", "form2"),
		loc("loc_m_10", "كل الممرات والحمامات، MC4", "All Corridors & Toilets, MC4", "zone_medium", "form2"),
		loc("loc_m_11", "قسم التغذية", "Nutrition Department", "zone_medium", "form2"),
		loc("loc_m_12", "قسم التخدير", "Anesthesia Department", "zone_medium", "form2"),
		loc("loc_m_13", "قاعة الرازي", "Al-Razi Hall", "zone_medium", "form2"),
		loc("loc_m_14", "مغسلة الموتى", "Morgue", "zone_medium", "form2"),
		loc("loc_m_15", "منطقة إدارة الصيانة والمشاريع الخارجية", "External Maintenance & Projects Area", "zone_medium", "form2"),
		loc("loc_m_16", "غرف النفايات العامة", "General Waste Rooms", "zone_medium", "form2"),
		loc("loc_m_17", "مكاتب الإدارة الطبية، NTCC", "Medical Admin Offices, NTCC", "zone_medium", "form2"),
		loc("loc_m_18", "غرف الحراس والبوابات، الأشعة بجميع أنواعها", "Guard Rooms, Gates, All Radiology", "zone_medium", "form2"),
		loc("loc_m_19", "المبنى الإداري الجديد", "New Admin Building", "zone_medium", "form2"),
		loc("loc_m_20", "محطة التبريد (الأعصاب)", "Chiller Plant (Neurology)", "zone_medium", "form2"),
		loc("loc_m_21", "قسم التمريض", "Nursing Department", "zone_medium", "form2"),

		// Low risk
		loc("loc_l_1", "جميع الحدائق بالمستشفى", "All Hospital Gardens", "zone_low", "form3"),
		loc("loc_l_2", "مركز الأميرة نورة، قسم الأسنان", "Princess Noura Center, Dental", "zone_low", "form3"),
		loc("loc_l_3", "جناح 16، العلاج", "Ward 16, Therapy", "zone_low", "form3"),
		loc("loc_l_4", "MFUM، جناح 1-2-3-4", "MFUM, Ward 1-2-3-4", "zone_low", "form3"),
		loc("loc_l_5", "الخدمة الاجتماعية والشؤون الأكاديمية", "Social Service & Academic Affairs", "zone_low", "form3"),
		loc("loc_l_6", "جناح 11-12، مبنى العيادات الخارجية (ثلاثة طوابق)", "Ward 11-12, Outpatient Clinics (3 Floors)", "zone_low", "form3"),
		loc("loc_l_7", "جناح 28-30-31، جراحة المسالك البولية", "Ward 28-30-31, Urology", "zone_low", "form3"),
		loc("loc_l_8", "جناح الإفاقة", "Recovery Ward", "zone_low", "form3"),
		loc("loc_l_9", "إدارة الرعاية الصحية", "Healthcare Administration", "zone_low", "form3"),
		loc("loc_l_10", "المسجد الرئيسي", "Main Mosque", "zone_low", "form3"),
		loc("loc_l_11", "الغرف التعليمية والمكتبة", "Education Rooms & Library", "zone_low", "form3"),
		loc("loc_l_12", "الأشعة الرئيسية والأقسام التابعة", "Main Radiology & Sub-departments", "zone_low", "form3"),
		loc("loc_l_13", "مركز التبرع بالدم", "Blood Donation Center", "zone_low", "form3"),
		loc("loc_l_14", "جناح 40-41-50-51، المختبر المركزي الجديد", "Ward 40-41-50-51, New Central Lab", "zone_low", "form3"),
		loc("loc_l_15", "غرف الانتظار الخارجية", "External Waiting Rooms", "zone_low", "form3"),
		loc("loc_l_16", "مواقف السيارات الزوار", "Visitor Parking", "zone_low", "form3"),
		loc("loc_l_17", "غرف الأطباء المناوبين رجال ونساء", "On-call Doctors Rooms (M/F)", "zone_low", "form3"),
		loc("loc_l_18", "مصليات النساء", "Female Prayer Rooms", "zone_low", "form3"),
		loc("loc_l_19", "CSSD - NTCC - عمليات اليوم الواحد", "CSSD - NTCC - Day Surgery", "zone_low", "form3"),
		loc("loc_l_20", "قاعة الإندجاني", "Al-Endijani Hall", "zone_low", "form3"),
		loc("loc_l_21", "جميع الصيدليات", "All Pharmacies", "zone_low", "form3"),
		loc("loc_l_22", "مواقف السيارات المبنى الإداري", "Admin Building Parking", "zone_low", "form3"),
		loc("loc_l_23", "مصليات العلاج", "Therapy Prayer Rooms", "zone_low", "form3"),
		loc("loc_l_24", "PENT HOUSE", "Penthouse", "zone_low", "form3"),
		loc("loc_l_25", "Pergola medical", "Medical Pergola", "zone_low", "form3"),
		loc("loc_l_26", "Guest House", "Guest House", "zone_low", "form3"),
		loc("loc_l_27", "الطبيعي القديم", "Old Natural Therapy", "zone_low", "form3"),
		loc("loc_l_28", "مكاتب أهلية العلاج", "Private Therapy Offices", "zone_low", "form3"),
		loc("loc_l_29", "الصيدلة الداخلية الرئيسية", "Main Inpatient Pharmacy", "zone_low", "form3"),
		loc("loc_l_30", "إدارة المواصلات", "Transportation Dept.", "zone_low", "form3"),
		loc("loc_l_31", "قسم الأعمال والتموين", "Business & Catering Dept.", "zone_low", "form3"),
		loc("loc_l_32", "Pergola admin", "Admin Pergola", "zone_low", "form3"),
		loc("loc_l_33", "مركز المعلومات", "Information Center", "zone_low", "form3"),
		loc("loc_l_34", "بنك الدم", "Blood Bank", "zone_low", "form3"),
		loc("loc_l_35", "سنترال", "Central Office", "zone_low", "form3"),
		loc("loc_l_36", "Day Care", "Day Care", "zone_low", "form3"),
		loc("loc_l_37", "التنسيق الطبي", "Medical Coordination", "zone_low", "form3"),
		loc("loc_l_38", "مكاتب إدارة المشاريع", "Project Management Offices", "zone_low", "form3"),
		loc("loc_l_39", "PHC الطب الميداني الجديد", "PHC New Field Medicine", "zone_low", "form3"),
		loc("loc_l_40", "مواقف مركز الأعصاب والطوارئ", "Neurology & ER Parking", "zone_low", "form3"),
		loc("loc_l_41", "إدارة MC2 والصيانة والأجهزة الطبية", "MC2, Maintenance & Medical Eq. Mgmt.", "zone_low", "form3"),
		loc("loc_l_42", "مبنى المولدات (الأعصاب)", "Generator Building (Neurology)", "zone_low", "form3"),
		loc("loc_l_43", "البريد والمالية والتحقيق والممتلكات والعقود", "Mail, Finance, Investigation, Property, Contracts", "zone_low", "form3"),
		loc("loc_l_44", "مواقف السيارات العلاج الطبيعي", "Physical Therapy Parking", "zone_low", "form3"),
		loc("loc_l_45", "مكاتب مكافحة العدوى والاتصالات", "Infection Control & Comm. Offices", "zone_low", "form3"),
		loc("loc_l_46", "مسجد ومواقف العلاج الطبيعي", "Physical Therapy Mosque & Parking", "zone_low", "form3"),
		loc("loc_l_47", "إسكان الحرس الوطني بجدة", "National Guard Housing, Jeddah", "zone_low", "form3"),
		loc("loc_l_48", "مراكز صحية (أم السلم، الشرائع، بحرة، الطائف، جازان)", "Health Centers (Umm Al-Salam, etc.)", "zone_low", "form3"),
		loc("loc_l_49", "مركز الطب الوقائي", "Preventive Medicine Center", "zone_low", "form3"),
		loc("loc_l_50", "عيادة PHC", "PHC Clinic", "zone_low", "form3"),
		loc("loc_l_51", "PHC supervisor's", "PHC Supervisor's Office", "zone_low", "form3"),
		loc("loc_l_52", "مبنى الغلايات (الأعصاب)", "Boiler Building (Neurology)", "zone_low", "form3"),
		loc("loc_l_53", "مسجد الطائف", "Taif Mosque", "zone_low", "form3"),
		loc("loc_l_54", "عيادة CMC", "CMC Clinic", "zone_low", "form3"),
		loc("loc_l_55", "مركز التدريب", "Training Center", "zone_low", "form3"),
		loc("loc_l_56", "مركز العيادات التخصصية الشاملة", "Comprehensive Specialty Clinics Center", "zone_low", "form3"),
	}

	return New(zones, locations, forms)
}
