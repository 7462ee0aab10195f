package boggle

// standardDice lists the faces of the 16 classic Boggle dice. The board is
// produced by shuffling the dice into the 16 cells then choosing one face
// per die uniformly at random. The letter Q stands for the digraph "QU".
var standardDice = [16]string{
	"AAEEGN",
	"ABBJOO",
	"ACHOPS",
	"AFFKPS",
	"AOOTTW",
	"CIMOTU",
	"DEILRX",
	"DELRVY",
	"DISTTY",
	"EEGHNW",
	"EEINSU",
	"EHRTVW",
	"EIOSST",
	"ELRTTY",
	"HIMNQU",
	"HLNNRZ",
}
