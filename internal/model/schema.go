package model

// Metadata column names of the source table.
const (
	ColID                  = "miRNA"
	ColConservation        = "Conservation"
	ColExpression          = "Expression"
	ColStructure           = "Structure"
	ColClassMirBase        = "Class_miRBase"
	ColClassMirGeneDB      = "Class_MirGeneDB"
	ColFamilyMirGeneDB     = "MirGeneDB family"
	ColFamilyMirBase       = "miRBase family"
	ColHsaSpecificity      = "hsa-specificity"
	ColRepeatClass         = "Repeat_Class"
	ColSequence            = "sequence"
	ColFamilyNameMirBase   = "family_name_mirbase"
	ColFamilyNameMirGeneDB = "family_name_mirgene"
)

// Schema lists the species and tissue columns a table is expected to carry.
type Schema struct {
	Species []string `yaml:"species" json:"species"`
	Tissues []string `yaml:"tissues" json:"tissues"`
}

// ExpectedColumns returns every column the normalizer guarantees, in source order.
func (s Schema) ExpectedColumns() []string {
	cols := make([]string, 0, len(s.Species)+len(s.Tissues)+16)
	cols = append(cols, ColID, ColConservation)
	cols = append(cols, s.Species...)
	cols = append(cols, ColExpression)
	cols = append(cols, s.Tissues...)
	cols = append(cols,
		ColStructure,
		ColClassMirBase, ColClassMirGeneDB,
		ColFamilyMirGeneDB, ColFamilyMirBase,
		ColHsaSpecificity, ColRepeatClass,
		ColSequence,
		ColFamilyNameMirBase, ColFamilyNameMirGeneDB,
	)
	return cols
}

// DefaultSchema returns the species and tissue panel of the published table.
func DefaultSchema() Schema {
	return Schema{
		Species: append([]string(nil), defaultSpecies...),
		Tissues: append([]string(nil), defaultTissues...),
	}
}

var defaultSpecies = []string{
	"Pan_troglodytes", "Pan_paniscus", "Macaca_mulatta", "Lemur_catta", "Felis_catus",
	"Sus_scrofa", "Bos_taurus", "Mus_musculus", "Gallus_gallus", "Xenopus_tropicalis",
	"Danio_rerio", "Takifugu_rubripes",
}

var defaultTissues = []string{
	"blood", "colon", "liver", "brain", "oral_cavity", "plasma", "lung", "kidney", "PBMC", "heart", "serum",
	"milk", "placenta", "astrocyte", "glandular_breast_tissue", "cartilage", "adrenal_gland",
	"amniotic_fluid", "artery", "lymphocyte_B", "stomach", "epidermis", "bone", "thyroid", "skin",
	"saliva", "pancreas", "sperm", "bronchus", "embryo", "feces", "ileum", "retina", "lavage", "uterus",
	"mesenchymal_stromal_cells", "islet", "melanocyte", "prostate", "lymphocyte", "cortex", "semen",
	"foreskin", "neuron", "cd34", "bone_marrow", "fast_twitch", "macrophage", "ovary",
	"chorionic_villi", "cerebellum", "urine", "duodenum", "csf", "pleurae", "spinal_cord", "platelet",
	"testis", "bladder", "hippocampus", "pituitary_gland", "cervix", "dendritic_cells", "larynx",
	"ventricle", "limb_muscle", "keratinocyte", "umbilical_cord", "nucleus_pulposus",
	"follicular_fluid", "cd19", "salivary_glands", "basophils", "mononuclear_cells", "epithelium",
	"adipose", "natural_killer", "meninges", "vein", "oocyte", "temporomandibular_joint",
	"grey_matter", "pharynx", "cd4", "dermis", "aqueous_humor", "podocyte", "choroid_plexus",
	"esophagus", "theca", "vaginal_tissue", "mesenchymal_stem_cells", "tonsil",
}

// System groups tissues by organ system.
type System struct {
	Name    string   `json:"name"`
	Icon    string   `json:"icon"`
	Tissues []string `json:"tissues"`
}

// Systems returns the organ-system tree in display order.
func Systems() []System {
	out := make([]System, len(systems))
	for i, s := range systems {
		out[i] = System{Name: s.Name, Icon: s.Icon, Tissues: append([]string(nil), s.Tissues...)}
	}
	return out
}

var systems = []System{
	{Name: "1. Cardiorespiratory system", Icon: "cardio.png", Tissues: []string{
		"heart", "ventricle", "artery", "vein",
		"blood", "plasma", "serum", "platelet",
		"lung", "bronchus", "pleurae", "larynx", "pharynx",
	}},
	{Name: "2. Digestive & Metabolic system", Icon: "gastro.png", Tissues: []string{
		"oral_cavity", "esophagus", "stomach", "duodenum", "ileum", "colon",
		"liver", "pancreas", "islet", "salivary_glands", "feces",
	}},
	{Name: "3. Neuro-Endocrine system", Icon: "neuro.png", Tissues: []string{
		"brain", "cortex", "cerebellum", "hippocampus",
		"spinal_cord", "grey_matter", "meninges", "choroid_plexus", "csf",
		"retina", "neuron", "astrocyte",
		"adrenal_gland", "thyroid", "pituitary_gland",
	}},
	{Name: "4. Immune / Hematolymphoid system", Icon: "immune.png", Tissues: []string{
		"PBMC", "mononuclear_cells", "lymphocyte", "lymphocyte_B",
		"cd4", "cd19", "cd34", "macrophage", "dendritic_cells",
		"natural_killer", "basophils", "tonsil", "bone_marrow",
	}},
	{Name: "5. Musculoskeletal & Integumentary system", Icon: "muscle.png", Tissues: []string{
		"bone", "cartilage", "temporomandibular_joint",
		"limb_muscle", "fast_twitch",
		"skin", "epidermis", "dermis", "keratinocyte", "melanocyte", "foreskin",
	}},
	{Name: "6. Urogenital & Reproductive system", Icon: "reproductive.png", Tissues: []string{
		"kidney", "bladder", "urine",
		"uterus", "cervix", "ovary", "testis", "prostate", "vaginal_tissue",
		"placenta", "chorionic_villi", "umbilical_cord", "embryo",
		"oocyte", "sperm", "semen", "follicular_fluid", "amniotic_fluid", "theca",
	}},
	{Name: "Other system", Icon: "other.png", Tissues: []string{
		"adipose", "epithelium", "podocyte", "milk",
		"mesenchymal_stromal_cells", "mesenchymal_stem_cells",
		"nucleus_pulposus", "glandular_breast_tissue",
		"lavage", "aqueous_humor",
	}},
}
