package graph

// Well-known vocabulary used by the miner.
const (
	RDFType   IRI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFSLabel IRI = "http://www.w3.org/2000/01/rdf-schema#label"
	RDFSClass IRI = "http://www.w3.org/2000/01/rdf-schema#Class"

	// Identity is the reserved reflexive predicate that anchors every
	// clause body to the entity it describes. It must not occur in
	// input graphs.
	Identity IRI = "local://identity"
)

// XSD datatypes recognised by the cache and the multimodal clusterer.
const (
	XSDAnyType            IRI = "http://www.w3.org/2001/XMLSchema#anyType"
	XSDString             IRI = "http://www.w3.org/2001/XMLSchema#string"
	XSDNormalizedString   IRI = "http://www.w3.org/2001/XMLSchema#normalizedString"
	XSDBoolean            IRI = "http://www.w3.org/2001/XMLSchema#boolean"
	XSDInteger            IRI = "http://www.w3.org/2001/XMLSchema#integer"
	XSDNonNegativeInteger IRI = "http://www.w3.org/2001/XMLSchema#nonNegativeInteger"
	XSDNonPositiveInteger IRI = "http://www.w3.org/2001/XMLSchema#nonPositiveInteger"
	XSDNegativeInteger    IRI = "http://www.w3.org/2001/XMLSchema#negativeInteger"
	XSDPositiveInteger    IRI = "http://www.w3.org/2001/XMLSchema#positiveInteger"
	XSDFloat              IRI = "http://www.w3.org/2001/XMLSchema#float"
	XSDDouble             IRI = "http://www.w3.org/2001/XMLSchema#double"
	XSDDecimal            IRI = "http://www.w3.org/2001/XMLSchema#decimal"
	XSDDate               IRI = "http://www.w3.org/2001/XMLSchema#date"
	XSDDateTime           IRI = "http://www.w3.org/2001/XMLSchema#dateTime"
	XSDDateTimeStamp      IRI = "http://www.w3.org/2001/XMLSchema#dateTimeStamp"
	XSDGDay               IRI = "http://www.w3.org/2001/XMLSchema#gDay"
	XSDGMonth             IRI = "http://www.w3.org/2001/XMLSchema#gMonth"
	XSDGMonthDay          IRI = "http://www.w3.org/2001/XMLSchema#gMonthDay"
	XSDGYear              IRI = "http://www.w3.org/2001/XMLSchema#gYear"
	XSDGYearMonth         IRI = "http://www.w3.org/2001/XMLSchema#gYearMonth"
)
